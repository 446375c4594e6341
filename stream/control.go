package stream

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledtween/animation"
)

// ControlMessage asks for a named animation to play or stop.
type ControlMessage struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// TaskSource looks up animations by name.
type TaskSource interface {
	Task(name string) *animation.Task
}

// Controller plays and stops animations on request over MQTT.
type Controller struct {
	client mqtt.Client
	topic  string
	tasks  TaskSource
}

// NewController creates a Controller listening on the control topic.
func NewController(config Config, client mqtt.Client, tasks TaskSource) *Controller {
	c := new(Controller)
	c.client = client
	c.topic = config.Mqtt.Topics.Control
	c.tasks = tasks
	return c
}

func (c *Controller) handleClientMessages(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s\n", msg.MessageID(), msg.Topic(), msg.Payload())
	if err := c.Handle(msg.Payload()); err != nil {
		log.Println(err)
	}
}

// Handle applies one JSON control message.
func (c *Controller) Handle(payload []byte) error {
	var message ControlMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return fmt.Errorf("control message: %w", err)
	}

	t := c.tasks.Task(message.Name)
	if t == nil {
		return fmt.Errorf("control message: unknown animation %q", message.Name)
	}

	switch message.Type {
	case "play":
		t.Play()
	case "stop":
		t.Stop()
	default:
		return fmt.Errorf("control message: unknown type %q", message.Type)
	}
	return nil
}

// Subscribe starts listening on the control topic.
func (c *Controller) Subscribe() error {
	if token := c.client.Subscribe(c.topic, 0, c.handleClientMessages); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

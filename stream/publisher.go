package stream

import (
	"fmt"

	"github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MqttPublisher publishes through an MQTT client and waits for each token.
type MqttPublisher struct {
	client mqtt.Client
	qos    byte
}

// NewMqttPublisher creates an MqttPublisher.
func NewMqttPublisher(client mqtt.Client, qos byte) *MqttPublisher {
	p := new(MqttPublisher)
	p.client = client
	p.qos = qos
	return p
}

// Publish sends payload and waits for the broker acknowledgement.
func (p *MqttPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

package stream

import (
	"log"
	"path"

	"github.com/matt-g-everett/ledtween/animation"
	"github.com/matt-g-everett/ledtween/scene"
)

// Mirror is an animation.Accessor that writes through to another accessor
// and publishes every written value to <topic>/<element>/<property>.
type Mirror struct {
	animation.Accessor
	publisher Publisher
	topic     string
}

// NewMirror wraps accessor.
func NewMirror(accessor animation.Accessor, publisher Publisher, topic string) *Mirror {
	m := new(Mirror)
	m.Accessor = accessor
	m.publisher = publisher
	m.topic = topic
	return m
}

// Write stores the value, then publishes it. Publish failures are logged,
// not returned: the stored value is already current.
func (m *Mirror) Write(el animation.Element, property, value string) error {
	if err := m.Accessor.Write(el, property, value); err != nil {
		return err
	}
	if err := m.publisher.Publish(m.valueTopic(el, property), []byte(value)); err != nil {
		log.Println(err)
	}
	return nil
}

func (m *Mirror) valueTopic(el animation.Element, property string) string {
	key := "unknown"
	if e, ok := el.(*scene.Element); ok {
		key = e.Key()
	}
	return path.Join(m.topic, key, property)
}

package stream

import (
	"context"
	"log"
	"time"

	"github.com/matt-g-everett/ledtween/scene"
)

// Streamer streams RGB data frames of a scene to an ledrx device.
type Streamer struct {
	publisher Publisher
	doc       *scene.Document
	selector  string
	property  string
	topic     string
	interval  time.Duration
}

// NewStreamer creates an instance of a Streamer from the stream settings
// in config.
func NewStreamer(config Config, publisher Publisher, doc *scene.Document) *Streamer {
	s := new(Streamer)
	s.publisher = publisher
	s.doc = doc
	s.selector = config.Stream.Select
	s.property = config.Stream.Property
	s.topic = config.Mqtt.Topics.Stream
	s.interval = time.Duration(config.Stream.FrameIntervalMs) * time.Millisecond
	if s.interval <= 0 {
		s.interval = 33 * time.Millisecond
	}
	return s
}

// CalculateFrame builds the current frame from the selected elements.
func (s *Streamer) CalculateFrame() *Frame {
	return FrameFromElements(s.doc.Find(s.selector), s.property)
}

// SendFrame sends the current frame as binary.
func (s *Streamer) SendFrame() error {
	f := s.CalculateFrame()
	b, _ := f.MarshalBinary()
	return s.publisher.Publish(s.topic, b)
}

// Run sends frames continuously until ctx is cancelled.
func (s *Streamer) Run(ctx context.Context) {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				log.Println(err)
			}
		case <-ctx.Done():
			return
		}
	}
}

package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matt-g-everett/ledtween/animation"
	"github.com/matt-g-everett/ledtween/scene"
)

type message struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []message
	err  error
}

func (p *fakePublisher) Publish(topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, message{topic, append([]byte(nil), payload...)})
	return p.err
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func newStrip() *scene.Document {
	doc := scene.NewDocument()
	a := scene.NewElement("p0", "led")
	a.SetStyle("color", "#ff0000")
	b := scene.NewElement("p1", "led")
	b.SetStyle("color", "rgb(0, 128, 255)")
	c := scene.NewElement("p2", "led")
	doc.Add(a, b, c, scene.NewElement("title", "div"))
	return doc
}

func TestFrameMarshalBinary(t *testing.T) {
	doc := newStrip()
	f := FrameFromElements(doc.Find("led"), "color")
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{3, 0, 255, 0, 0, 0, 128, 255, 0, 0, 0}
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalBinary() = %v, want %v", data, want)
	}
}

func TestStreamerSendFrame(t *testing.T) {
	pub := &fakePublisher{}
	s := NewStreamer(DefaultConfig(), pub, newStrip())
	if err := s.SendFrame(); err != nil {
		t.Fatal(err)
	}
	if pub.sent[0].topic != "home/xmastree/stream" {
		t.Errorf("topic = %q", pub.sent[0].topic)
	}
	if len(pub.sent[0].payload) != 2+3*3 {
		t.Errorf("payload length = %d", len(pub.sent[0].payload))
	}
}

func TestStreamerRunStopsWithContext(t *testing.T) {
	pub := &fakePublisher{}
	config := DefaultConfig()
	config.Stream.FrameIntervalMs = 1
	s := NewStreamer(config, pub, newStrip())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for pub.count() < 3 {
		select {
		case <-deadline:
			t.Fatal("no frames published")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMirrorPublishesWrites(t *testing.T) {
	doc := newStrip()
	pub := &fakePublisher{}
	m := NewMirror(doc, pub, "tree/values")

	el := doc.Select("#p2")[0]
	if err := m.Write(el, "color", "#00ff00"); err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("#p2")[0].Style("color"); got != "#00ff00" {
		t.Errorf("stored color = %q", got)
	}
	if pub.sent[0].topic != "tree/values/p2/color" || string(pub.sent[0].payload) != "#00ff00" {
		t.Errorf("published %q %q", pub.sent[0].topic, pub.sent[0].payload)
	}

	// Read passes through to the wrapped accessor.
	if v, _ := m.Read(el, "color"); v != "#00ff00" {
		t.Errorf("Read = %q", v)
	}

	// A failing publish does not fail the write.
	pub.err = errors.New("offline")
	if err := m.Write(el, "color", "#000000"); err != nil {
		t.Errorf("Write error = %v", err)
	}

	// A failing store is not published.
	n := pub.count()
	if err := m.Write("bogus", "color", "#000000"); !errors.Is(err, scene.ErrNotElement) {
		t.Errorf("Write error = %v, want ErrNotElement", err)
	}
	if pub.count() != n {
		t.Error("failed write was published")
	}
}

type noTimer struct{}

func (noTimer) Start(time.Duration, func()) {}

func TestControllerHandle(t *testing.T) {
	sc, err := scene.ParseScript([]byte("animations:\n  - name: glow\n    duration: 100\n    loop: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	s := animation.NewScheduler(animation.Options{Timer: noTimer{}, Logger: log.New(io.Discard, "", 0)})
	program, err := sc.Build(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(DefaultConfig(), nil, program)

	if err := c.Handle([]byte(`{"type":"play","name":"glow"}`)); err != nil {
		t.Fatal(err)
	}
	if !program.Task("glow").Playing() {
		t.Error("glow not playing")
	}
	if err := c.Handle([]byte(`{"type":"stop","name":"glow"}`)); err != nil {
		t.Fatal(err)
	}
	if program.Task("glow").Playing() {
		t.Error("glow still playing")
	}

	for _, bad := range []string{`nope`, `{"type":"play","name":"missing"}`, `{"type":"pause","name":"glow"}`} {
		if err := c.Handle([]byte(bad)); err == nil {
			t.Errorf("Handle(%s) expected error", bad)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "mqtt:\n  url: tcp://broker:1883\n  password: file\nstream:\n  select: .strip\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEDTWEEN_MQTT_PASSWORD", "secret")
	t.Setenv("LEDTWEEN_MQTT_URL", "")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mqtt.URL != "tcp://broker:1883" {
		t.Errorf("url = %q", c.Mqtt.URL)
	}
	if c.Mqtt.Password != "secret" {
		t.Errorf("password = %q, want env override", c.Mqtt.Password)
	}
	if c.Stream.Select != ".strip" || c.Stream.Property != "color" {
		t.Errorf("stream = %+v", c.Stream)
	}
	if c.Engine.TickIntervalMs != 15 || c.Engine.DefaultUnits != "px" {
		t.Errorf("engine defaults lost: %+v", c.Engine)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

package scene

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matt-g-everett/ledtween/animation"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

type idleTimer struct{}

func (idleTimer) Start(time.Duration, func()) {}

const testScript = `
elements:
  - id: px
    tag: led
    classes: [strip]
    count: 3
    style: {color: "#000000"}
  - id: title
    tag: div
    style: {width: "10%"}
animations:
  - name: grow
    duration: 1000
    settle: true
    moves:
      - select: "#title"
        properties:
          width: {to: "80%", ease: linear}
      - call: progress
        ease: linear
    then: glow
  - name: glow
    duration: 500
    oscillate: true
    moves:
      - select: .strip
        properties:
          color: {from: "#000000", to: "#ffffff", space: rgb}
autoplay: [grow]
`

func buildTestProgram(t *testing.T, callbacks Callbacks) (*Document, *animation.Scheduler, *stepClock, *Program) {
	t.Helper()
	sc, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatal(err)
	}
	doc := NewDocument()
	sc.Populate(doc)

	clock := &stepClock{now: time.Unix(0, 0)}
	s := animation.NewScheduler(animation.Options{
		Clock:    clock,
		Timer:    idleTimer{},
		Selector: doc,
		Accessor: doc,
		Logger:   log.New(io.Discard, "", 0),
	})
	p, err := sc.Build(s, callbacks)
	if err != nil {
		t.Fatal(err)
	}
	return doc, s, clock, p
}

func TestPopulateCount(t *testing.T) {
	sc, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatal(err)
	}
	doc := NewDocument()
	sc.Populate(doc)

	strip := doc.Find(".strip")
	if len(strip) != 3 {
		t.Fatalf("strip has %d elements, want 3", len(strip))
	}
	if strip[2].ID != "px2" || strip[0].Style("color") != "#000000" {
		t.Errorf("strip[2] = %v color %q", strip[2], strip[0].Style("color"))
	}
}

func TestProgramRunsChain(t *testing.T) {
	var seen []float64
	doc, s, clock, p := buildTestProgram(t, Callbacks{"progress": func(v float64) { seen = append(seen, v) }})
	p.Play()

	step := func(d time.Duration) {
		clock.now = clock.now.Add(d)
		s.Tick()
	}

	step(250 * time.Millisecond)
	if got := doc.Find("#title")[0].Style("width"); got != "27.5%" {
		t.Errorf("width = %q, want 27.5%%", got)
	}

	step(900 * time.Millisecond)
	if got := doc.Find("#title")[0].Style("width"); got != "80%" {
		t.Errorf("settled width = %q, want 80%%", got)
	}
	if seen[len(seen)-1] != 1 {
		t.Errorf("last callback progress = %v, want 1", seen[len(seen)-1])
	}
	if !p.Task("glow").Playing() || p.Task("grow").Playing() {
		t.Fatal("expected grow to hand over to glow")
	}

	step(250 * time.Millisecond)
	for _, e := range doc.Find(".strip") {
		if got := e.Style("color"); got != "#808080" {
			t.Errorf("%v color = %q, want #808080", e, got)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	base := "animations:\n"
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"no name", base + "  - duration: 10\n", "without a name"},
		{"duplicate", base + "  - name: a\n  - name: a\n", "duplicate"},
		{"then missing", base + "  - name: a\n    then: b\n", `then "b"`},
		{"first missing", base + "  - name: a\n    first: b\n", `first "b"`},
		{"callback missing", base + "  - name: a\n    moves:\n      - call: nope\n", "unknown callback"},
		{"bad value", base + "  - name: a\n    moves:\n      - select: div\n        properties:\n          width: {to: wide}\n", "malformed"},
		{"autoplay missing", base + "  - name: a\nautoplay: [b]\n", `autoplay "b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScript([]byte(tt.script))
			if err != nil {
				t.Fatal(err)
			}
			s := animation.NewScheduler(animation.Options{
				Timer:    idleTimer{},
				Selector: NewDocument(),
				Accessor: NewDocument(),
				Logger:   log.New(io.Discard, "", 0),
			})
			_, err = sc.Build(s, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestParseScriptRejectsUnknownFields(t *testing.T) {
	if _, err := ParseScript([]byte("animations:\n  - name: a\n    durations: 5\n")); err == nil {
		t.Error("expected strict decoding error")
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Animations) != 2 || sc.Autoplay[0] != "grow" {
		t.Errorf("script = %+v", sc)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

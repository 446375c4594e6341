package scene

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/matt-g-everett/ledtween/animation"
	"gopkg.in/yaml.v2"
)

// Script declares elements and named animations in YAML:
//
//	elements:
//	  - {id: star, tag: led, style: {color: "#000000"}}
//	animations:
//	  - name: glow
//	    duration: 2000
//	    oscillate: true
//	    moves:
//	      - select: "#star"
//	        properties:
//	          color: {to: "#ffcc00", ease: swing}
//	autoplay: [glow]
type Script struct {
	Elements   []ElementSpec   `yaml:"elements"`
	Animations []AnimationSpec `yaml:"animations"`
	Autoplay   []string        `yaml:"autoplay"`
}

// ElementSpec declares one element, or Count elements sharing a tag when
// Count is above 1 (ids get the index appended).
type ElementSpec struct {
	ID      string            `yaml:"id"`
	Tag     string            `yaml:"tag"`
	Classes []string          `yaml:"classes"`
	Style   map[string]string `yaml:"style"`
	Count   int               `yaml:"count"`
}

// AnimationSpec declares one task. Duration is in milliseconds. First and
// Then name other animations in the same script.
type AnimationSpec struct {
	Name      string     `yaml:"name"`
	Duration  int        `yaml:"duration"`
	Loop      bool       `yaml:"loop"`
	Oscillate bool       `yaml:"oscillate"`
	Settle    bool       `yaml:"settle"`
	Moves     []MoveSpec `yaml:"moves"`
	First     string     `yaml:"first"`
	Then      string     `yaml:"then"`
}

// MoveSpec is either a style target (Select + Properties) or a named
// callback (Call + Ease).
type MoveSpec struct {
	Select     string          `yaml:"select"`
	Properties animation.Props `yaml:"properties"`
	Call       string          `yaml:"call"`
	Ease       string          `yaml:"ease"`
}

// Callbacks maps names usable in MoveSpec.Call to functions.
type Callbacks map[string]func(float64)

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	sc := new(Script)
	if err := yaml.UnmarshalStrict(data, sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return sc, nil
}

// Populate adds the script's elements to doc.
func (sc *Script) Populate(doc *Document) {
	for _, es := range sc.Elements {
		n := es.Count
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			id := es.ID
			if es.Count > 1 && id != "" {
				id = fmt.Sprintf("%s%d", id, i)
			}
			e := NewElement(id, es.Tag, es.Classes...)
			for k, v := range es.Style {
				e.SetStyle(k, v)
			}
			doc.Add(e)
		}
	}
}

// Program is a built script: named tasks ready to play.
type Program struct {
	tasks    map[string]*animation.Task
	autoplay []string
}

// Build creates a task per animation on s. Style targets are resolved
// against s's selector, so populate the document first.
func (sc *Script) Build(s *animation.Scheduler, callbacks Callbacks) (*Program, error) {
	p := &Program{tasks: make(map[string]*animation.Task), autoplay: sc.Autoplay}

	for _, as := range sc.Animations {
		if as.Name == "" {
			return nil, errors.New("animation without a name")
		}
		if _, dup := p.tasks[as.Name]; dup {
			return nil, fmt.Errorf("duplicate animation %q", as.Name)
		}

		t := s.Animate(time.Duration(as.Duration)*time.Millisecond, as.Loop)
		if as.Oscillate {
			t.Oscillate()
		}
		if as.Settle {
			t.Settle()
		}
		for _, m := range as.Moves {
			if m.Call != "" {
				fn, ok := callbacks[m.Call]
				if !ok {
					return nil, fmt.Errorf("animation %q: unknown callback %q", as.Name, m.Call)
				}
				t.MoveFunc(fn, m.Ease)
				continue
			}
			t.Move(m.Select, m.Properties)
		}
		if err := t.Err(); err != nil {
			return nil, fmt.Errorf("animation %q: %w", as.Name, err)
		}
		p.tasks[as.Name] = t
	}

	for _, as := range sc.Animations {
		t := p.tasks[as.Name]
		if as.First != "" {
			next, ok := p.tasks[as.First]
			if !ok {
				return nil, fmt.Errorf("animation %q: first %q not found", as.Name, as.First)
			}
			t.First(animation.Chain(next))
		}
		if as.Then != "" {
			next, ok := p.tasks[as.Then]
			if !ok {
				return nil, fmt.Errorf("animation %q: then %q not found", as.Name, as.Then)
			}
			t.Then(animation.Chain(next))
		}
	}

	for _, name := range sc.Autoplay {
		if _, ok := p.tasks[name]; !ok {
			return nil, fmt.Errorf("autoplay %q not found", name)
		}
	}
	return p, nil
}

// Task returns the named task, or nil.
func (p *Program) Task(name string) *animation.Task {
	return p.tasks[name]
}

// Play starts the autoplay animations in order.
func (p *Program) Play() {
	for _, name := range p.autoplay {
		p.tasks[name].Play()
	}
}

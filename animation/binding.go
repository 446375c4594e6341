package animation

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/matt-g-everett/ledtween/codec"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/tween"
)

var (
	// ErrNoSelector is recorded when Move is used on a scheduler without a Selector.
	ErrNoSelector = errors.New("scheduler has no selector")
	// ErrNoAccessor is recorded when a style target is added to a scheduler
	// without an Accessor.
	ErrNoAccessor = errors.New("scheduler has no accessor")
)

// Prop describes one animated property. To is required; an empty From is
// read from the element on the first tick after Play. Units come from To.
type Prop struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Ease  string `yaml:"ease"`
	Space string `yaml:"space"`
}

// Props maps property names to their animation.
type Props map[string]Prop

// binding is one target of a task.
type binding interface {
	apply(progress float64) error
	// reset discards per-play state.
	reset()
}

type funcBinding struct {
	fn   func(float64)
	ease easing.Func
}

func (b *funcBinding) apply(p float64) error {
	b.fn(b.ease(p))
	return nil
}

func (b *funcBinding) reset() {}

// propertySpec is a parsed Prop whose start value may still be unknown.
type propertySpec struct {
	name  string
	from  *codec.Value
	to    codec.Value
	units string
	ease  easing.Func
	space tween.Space
}

// resolvedProperty has both ends fixed for the rest of a play.
type resolvedProperty struct {
	name  string
	from  codec.Value
	to    codec.Value
	units string
	ease  easing.Func
	space tween.Space
}

func (p *propertySpec) resolve(from codec.Value) *resolvedProperty {
	return &resolvedProperty{
		name:  p.name,
		from:  from,
		to:    p.to,
		units: p.units,
		ease:  p.ease,
		space: p.space,
	}
}

func (p *resolvedProperty) compute(progress float64) (string, error) {
	return tween.ComputeIn(p.space, p.from, p.to, p.ease(progress), p.units)
}

func parseProp(s *Scheduler, name string, prop Prop) (propertySpec, error) {
	spec := propertySpec{name: name}

	to, err := codec.ParseValue(prop.To)
	if err != nil {
		return spec, fmt.Errorf("property %q to: %w", name, err)
	}
	spec.to = to
	spec.units = codec.ParseUnits(prop.To)
	if spec.units == "" {
		spec.units = s.units
	}

	if prop.From != "" {
		from, err := codec.ParseValue(prop.From)
		if err != nil {
			return spec, fmt.Errorf("property %q from: %w", name, err)
		}
		if from.Kind != to.Kind {
			return spec, fmt.Errorf("property %q: %w", name, tween.ErrKindMismatch)
		}
		spec.from = &from
	}

	spec.ease = s.easings.Lookup(prop.Ease)
	spec.space, err = tween.ParseSpace(prop.Space)
	if err != nil {
		return spec, fmt.Errorf("property %q: %w", name, err)
	}
	return spec, nil
}

// styleBinding writes interpolated property values to elements.
type styleBinding struct {
	accessor Accessor
	logger   *log.Logger
	elements []Element
	props    []propertySpec

	mu sync.Mutex
	// resolved[i][j] is element i, property j; nil until first use.
	resolved [][]*resolvedProperty
}

func newStyleBinding(s *Scheduler, elements []Element, props Props) (*styleBinding, error) {
	if s.accessor == nil {
		return nil, ErrNoAccessor
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	b := new(styleBinding)
	b.accessor = s.accessor
	b.logger = s.logger
	b.elements = append([]Element(nil), elements...)
	b.props = make([]propertySpec, 0, len(names))
	for _, name := range names {
		spec, err := parseProp(s, name, props[name])
		if err != nil {
			return nil, err
		}
		b.props = append(b.props, spec)
	}
	b.reset()
	return b, nil
}

func (b *styleBinding) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resolved = make([][]*resolvedProperty, len(b.elements))
	for i := range b.resolved {
		b.resolved[i] = make([]*resolvedProperty, len(b.props))
	}
}

func (b *styleBinding) apply(progress float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for i, el := range b.elements {
		for j := range b.props {
			p := b.resolveLocked(i, j)
			text, err := p.compute(progress)
			if err != nil {
				errs = append(errs, fmt.Errorf("property %q: %w", p.name, err))
				continue
			}
			if err := b.accessor.Write(el, p.name, text); err != nil {
				errs = append(errs, fmt.Errorf("write %q: %w", p.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// resolveLocked fixes the start value of property j on element i, reading
// it from the element when From was left empty. Read failures fall back
// to zero.
func (b *styleBinding) resolveLocked(i, j int) *resolvedProperty {
	if p := b.resolved[i][j]; p != nil {
		return p
	}

	spec := &b.props[j]
	var from codec.Value
	if spec.from != nil {
		from = *spec.from
	} else {
		from = b.readFrom(b.elements[i], spec)
	}

	p := spec.resolve(from)
	b.resolved[i][j] = p
	return p
}

func (b *styleBinding) readFrom(el Element, spec *propertySpec) codec.Value {
	text, err := b.accessor.Read(el, spec.name)
	if err != nil {
		b.logger.Printf("Could not read %s on element %v: %v", spec.name, el, err)
		text = ""
	}

	v, err := codec.ParseValue(text)
	if err != nil || v.Kind != spec.to.Kind {
		if text != "" {
			b.logger.Printf("Using zero start for %s on element %v: current value %q", spec.name, el, text)
		}
		return codec.Zero(spec.to.Kind)
	}
	return v
}

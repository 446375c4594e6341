// Package scene is an in-memory element tree that animations select from,
// read and write.
package scene

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matt-g-everett/ledtween/animation"
)

// ErrNotElement is returned when an accessor call receives an element that
// did not come from a Document.
var ErrNotElement = errors.New("not a scene element")

// Element is a node with an id, a tag, classes and style properties.
type Element struct {
	ID      string
	Tag     string
	Classes []string

	mu    sync.RWMutex
	style map[string]string
}

// NewElement creates an element with an empty style.
func NewElement(id, tag string, classes ...string) *Element {
	e := new(Element)
	e.ID = id
	e.Tag = tag
	e.Classes = classes
	e.style = make(map[string]string)
	return e
}

// HasClass reports whether the element carries class c.
func (e *Element) HasClass(c string) bool {
	for _, have := range e.Classes {
		if have == c {
			return true
		}
	}
	return false
}

// Style returns a style property, or "" when unset.
func (e *Element) Style(property string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.style[property]
}

// SetStyle sets a style property.
func (e *Element) SetStyle(property, value string) {
	e.mu.Lock()
	if e.style == nil {
		e.style = make(map[string]string)
	}
	e.style[property] = value
	e.mu.Unlock()
}

// Key names the element for logs and topics: its id, or its tag when it has
// none.
func (e *Element) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Tag
}

func (e *Element) String() string {
	var b strings.Builder
	b.WriteString(e.Tag)
	if e.ID != "" {
		b.WriteString("#" + e.ID)
	}
	for _, c := range e.Classes {
		b.WriteString("." + c)
	}
	return b.String()
}

// State is a copy of an element's identity and style.
type State struct {
	ID      string            `json:"id,omitempty"`
	Tag     string            `json:"tag"`
	Classes []string          `json:"classes,omitempty"`
	Style   map[string]string `json:"style"`
}

func (e *Element) state() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	style := make(map[string]string, len(e.style))
	for k, v := range e.style {
		style[k] = v
	}
	return State{ID: e.ID, Tag: e.Tag, Classes: append([]string(nil), e.Classes...), Style: style}
}

// Document holds elements in insertion order and implements
// animation.Selector and animation.Accessor.
type Document struct {
	mu       sync.RWMutex
	elements []*Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return new(Document)
}

// Add appends elements to the document.
func (d *Document) Add(elements ...*Element) {
	d.mu.Lock()
	d.elements = append(d.elements, elements...)
	d.mu.Unlock()
}

// Elements returns the document's elements in order.
func (d *Document) Elements() []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*Element(nil), d.elements...)
}

// Find returns the elements matching selector: "#id" matches at most one
// element, ".class" every element with that class, anything else is a tag.
func (d *Document) Find(selector string) []*Element {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Element
	switch selector[0] {
	case '#':
		id := selector[1:]
		for _, e := range d.elements {
			if e.ID == id {
				return []*Element{e}
			}
		}
	case '.':
		class := selector[1:]
		for _, e := range d.elements {
			if e.HasClass(class) {
				out = append(out, e)
			}
		}
	default:
		for _, e := range d.elements {
			if e.Tag == selector {
				out = append(out, e)
			}
		}
	}
	return out
}

// Select implements animation.Selector.
func (d *Document) Select(selector string) []animation.Element {
	found := d.Find(selector)
	out := make([]animation.Element, len(found))
	for i, e := range found {
		out[i] = e
	}
	return out
}

// Read implements animation.Accessor. Unset properties read as "".
func (d *Document) Read(el animation.Element, property string) (string, error) {
	e, ok := el.(*Element)
	if !ok {
		return "", fmt.Errorf("read %s: %w: %T", property, ErrNotElement, el)
	}
	return e.Style(property), nil
}

// Write implements animation.Accessor.
func (d *Document) Write(el animation.Element, property, value string) error {
	e, ok := el.(*Element)
	if !ok {
		return fmt.Errorf("write %s: %w: %T", property, ErrNotElement, el)
	}
	e.SetStyle(property, value)
	return nil
}

// Snapshot copies every element's state, in document order.
func (d *Document) Snapshot() []State {
	elements := d.Elements()
	out := make([]State, len(elements))
	for i, e := range elements {
		out[i] = e.state()
	}
	return out
}

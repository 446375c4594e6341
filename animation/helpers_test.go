package animation

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type manualTimer struct {
	starts   int
	interval time.Duration
	fire     func()
}

func (m *manualTimer) Start(interval time.Duration, fire func()) {
	m.starts++
	m.interval = interval
	m.fire = fire
}

type fakeElement struct {
	name  string
	class string
}

func (e *fakeElement) String() string { return e.name }

var errReadFailed = errors.New("read failed")

type fakeAccessor struct {
	mu       sync.Mutex
	elements []*fakeElement
	styles   map[*fakeElement]map[string]string
	reads    int
	writes   []string
	failRead map[string]bool
}

func newFakeAccessor(names ...string) *fakeAccessor {
	a := &fakeAccessor{
		styles:   make(map[*fakeElement]map[string]string),
		failRead: make(map[string]bool),
	}
	for _, n := range names {
		el := &fakeElement{name: n, class: "all"}
		a.elements = append(a.elements, el)
		a.styles[el] = make(map[string]string)
	}
	return a
}

func (a *fakeAccessor) Select(selector string) []Element {
	var out []Element
	for _, el := range a.elements {
		if "#"+el.name == selector || "."+el.class == selector {
			out = append(out, el)
		}
	}
	return out
}

func (a *fakeAccessor) Read(el Element, property string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reads++
	if a.failRead[property] {
		return "", errReadFailed
	}
	return a.styles[el.(*fakeElement)][property], nil
}

func (a *fakeAccessor) Write(el Element, property, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	fe := el.(*fakeElement)
	a.styles[fe][property] = value
	a.writes = append(a.writes, fmt.Sprintf("%s.%s=%s", fe.name, property, value))
	return nil
}

func (a *fakeAccessor) style(name, property string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, el := range a.elements {
		if el.name == name {
			return a.styles[el][property]
		}
	}
	return ""
}

func (a *fakeAccessor) set(name, property, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, el := range a.elements {
		if el.name == name {
			a.styles[el][property] = value
		}
	}
}

type harness struct {
	sched *Scheduler
	clock *fakeClock
	timer *manualTimer
	doc   *fakeAccessor
}

func newHarness(names ...string) *harness {
	h := &harness{
		clock: newFakeClock(),
		timer: &manualTimer{},
		doc:   newFakeAccessor(names...),
	}
	h.sched = NewScheduler(Options{
		Clock:    h.clock,
		Timer:    h.timer,
		Selector: h.doc,
		Accessor: h.doc,
		Logger:   log.New(io.Discard, "", 0),
	})
	return h
}

// step advances the clock and runs one fan-out pass.
func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Tick()
}

// recorder collects callback progress values.
type recorder struct {
	values []float64
}

func (r *recorder) record(p float64) {
	r.values = append(r.values, p)
}

func (r *recorder) last() float64 {
	if len(r.values) == 0 {
		return -1
	}
	return r.values[len(r.values)-1]
}

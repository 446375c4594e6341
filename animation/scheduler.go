// Package animation advances many property animations in lock-step from a
// single shared timer.
//
// A Scheduler owns the timer and the list of playing tasks. Each timer fire
// ticks every playing task once, in the order they started. A Task maps its
// elapsed time to progress, reshapes it with an easing curve and writes the
// interpolated value of every target it moves:
//
//	s := animation.NewScheduler(animation.Options{Selector: doc, Accessor: doc})
//	fade := s.Animate(2*time.Second, false).
//		Move("#tree", animation.Props{"color": {To: "#ff0000", Ease: "swing"}})
//	s.Animate(time.Second, false).
//		MoveFunc(func(p float64) { brightness = p }, "speedup").
//		Then(animation.Chain(fade)).
//		Play()
package animation

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/matt-g-everett/ledtween/easing"
)

const (
	// DefaultInterval is the timer period between ticks.
	DefaultInterval = 15 * time.Millisecond
	// DefaultDuration applies when a task is created without a positive duration.
	DefaultDuration = 1000 * time.Millisecond
	// DefaultUnits is appended to scalar values whose target text has no unit.
	DefaultUnits = "px"

	// compactThreshold is the minimum tombstone count before the slot list
	// is compacted.
	compactThreshold = 64
)

// Options configures a Scheduler. Zero fields take defaults.
type Options struct {
	Clock        Clock
	Timer        Timer
	Interval     time.Duration
	Selector     Selector
	Accessor     Accessor
	Easings      *easing.Registry
	Logger       *log.Logger
	DefaultUnits string
}

// Scheduler ticks active tasks from one shared timer.
type Scheduler struct {
	clock    Clock
	timer    Timer
	interval time.Duration
	selector Selector
	accessor Accessor
	easings  *easing.Registry
	logger   *log.Logger
	units    string

	// tickMu serialises fan-out passes.
	tickMu sync.Mutex

	mu         sync.Mutex
	started    bool
	slots      []*Task
	tombstones int
	nextID     int
}

// NewScheduler creates a Scheduler. The timer is not started until the
// first task plays.
func NewScheduler(opts Options) *Scheduler {
	s := new(Scheduler)
	s.clock = opts.Clock
	if s.clock == nil {
		s.clock = realClock{}
	}
	s.timer = opts.Timer
	if s.timer == nil {
		s.timer = NewTickerTimer(context.Background())
	}
	s.interval = opts.Interval
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	s.selector = opts.Selector
	s.accessor = opts.Accessor
	s.easings = opts.Easings
	if s.easings == nil {
		s.easings = easing.Default()
	}
	s.logger = opts.Logger
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.units = opts.DefaultUnits
	if s.units == "" {
		s.units = DefaultUnits
	}
	return s
}

// Animate creates an idle task. A non-positive duration means DefaultDuration.
func (s *Scheduler) Animate(duration time.Duration, cycle bool) *Task {
	if duration <= 0 {
		duration = DefaultDuration
	}
	t := new(Task)
	t.scheduler = s
	t.duration = duration
	t.cycle = cycle
	t.slot = -1
	t.id = -1
	return t
}

// Active returns the number of playing tasks.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots) - s.tombstones
}

// Slots returns the length of the slot list, tombstones included.
func (s *Scheduler) Slots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Tick runs one fan-out pass: every live slot is ticked once, in slot
// order. Tasks started during the pass are appended and ticked in the same
// pass; tasks stopped during the pass are skipped if not yet reached.
func (s *Scheduler) Tick() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	s.compactLocked()
	s.mu.Unlock()

	for i := 0; ; i++ {
		s.mu.Lock()
		if i >= len(s.slots) {
			s.mu.Unlock()
			return
		}
		t := s.slots[i]
		s.mu.Unlock()

		if t != nil {
			s.tickTask(t)
		}
	}
}

// tickTask isolates one task's tick so a panic cannot end the pass.
func (s *Scheduler) tickTask(t *Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("Recovered panic in animation id=%d: %v", t.ID(), r)
			t.abort()
		}
	}()
	t.tick(s.clock.Now())
}

func (s *Scheduler) start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.timer.Start(s.interval, s.Tick)
}

// add gives t a slot and an id, keeping both if t already holds a slot.
// Ids are handed out in play order and match the slot index until the
// first compaction.
func (s *Scheduler) add(t *Task) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holdsLocked(t) {
		return t.id
	}
	t.slot = len(s.slots)
	t.id = s.nextID
	s.nextID++
	s.slots = append(s.slots, t)
	return t.id
}

// remove tombstones t's slot and returns the id it held, or -1.
func (s *Scheduler) remove(t *Task) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.holdsLocked(t) {
		return -1
	}
	id := t.id
	s.slots[t.slot] = nil
	s.tombstones++
	t.slot = -1
	t.id = -1
	return id
}

func (s *Scheduler) holdsLocked(t *Task) bool {
	return t.slot >= 0 && t.slot < len(s.slots) && s.slots[t.slot] == t
}

// compactLocked drops tombstones once they make up half the slot list.
// Live tasks move down in order and keep their ids. Only called between
// passes.
func (s *Scheduler) compactLocked() {
	if s.tombstones < compactThreshold || s.tombstones*2 < len(s.slots) {
		return
	}
	live := s.slots[:0]
	for _, t := range s.slots {
		if t != nil {
			t.slot = len(live)
			live = append(live, t)
		}
	}
	clear(s.slots[len(live):])
	s.slots = live
	s.tombstones = 0
}

package animation

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Direction is the way a cycling task traverses its progress.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Task animates a set of targets over a duration. Builder methods return the
// task so calls can be chained; configure a task before playing it.
//
// A task is idle until Play, then running until it completes (non-cycling
// tasks only) or Stop is called. There is no pause.
type Task struct {
	scheduler *Scheduler
	duration  time.Duration

	mu        sync.Mutex
	cycle     bool
	oscillate bool
	settle    bool
	direction Direction
	playing   bool
	starting  bool
	startTime time.Time
	run       uint64
	targets   []binding
	first     Hook
	then      Hook
	err       error

	// slot and id are guarded by scheduler.mu.
	slot int
	id   int
}

// MoveFunc adds a callback target. On every tick fn receives the progress
// reshaped by the named easing curve.
func (t *Task) MoveFunc(fn func(float64), ease string) *Task {
	if fn == nil {
		return t.fail(errors.New("move: nil callback"))
	}
	return t.add(&funcBinding{fn: fn, ease: t.scheduler.easings.Lookup(ease)})
}

// Move adds a style target for every element the selector matches. A
// selector that matches nothing yields a target that writes nothing.
func (t *Task) Move(selector string, props Props) *Task {
	if t.scheduler.selector == nil {
		return t.fail(fmt.Errorf("move %q: %w", selector, ErrNoSelector))
	}
	return t.MoveElements(t.scheduler.selector.Select(selector), props)
}

// MoveElements adds a style target for the given elements.
func (t *Task) MoveElements(elements []Element, props Props) *Task {
	b, err := newStyleBinding(t.scheduler, elements, props)
	if err != nil {
		return t.fail(err)
	}
	return t.add(b)
}

// Loop makes the task repeat forever.
func (t *Task) Loop() *Task {
	t.mu.Lock()
	t.cycle = true
	t.mu.Unlock()
	return t
}

// Oscillate makes the task repeat, reversing direction on every cycle.
func (t *Task) Oscillate() *Task {
	t.mu.Lock()
	t.cycle = true
	t.oscillate = true
	t.mu.Unlock()
	return t
}

// Settle makes the completing tick of a non-cycling task use progress 1
// instead of the overshooting elapsed ratio.
func (t *Task) Settle() *Task {
	t.mu.Lock()
	t.settle = true
	t.mu.Unlock()
	return t
}

// First sets the hook run when the task starts playing.
func (t *Task) First(h Hook) *Task {
	t.mu.Lock()
	t.first = h
	t.mu.Unlock()
	return t
}

// Then sets the hook run when the task stops.
func (t *Task) Then(h Hook) *Task {
	t.mu.Lock()
	t.then = h
	t.mu.Unlock()
	return t
}

// Play starts the task: the shared timer is started if needed, the First
// hook runs, then the task joins the scheduler with progress 0. Playing a
// running task restarts it in its current slot. A task with a build error is
// not played; see Err.
func (t *Task) Play() *Task {
	t.mu.Lock()
	if t.err != nil {
		err := t.err
		t.mu.Unlock()
		t.scheduler.logger.Printf("Not playing animation: %v", err)
		return t
	}
	if t.starting {
		// Re-entered from a First hook cycle.
		t.mu.Unlock()
		return t
	}
	t.starting = true
	first := t.first
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.starting = false
		t.mu.Unlock()
	}()

	t.scheduler.start()
	first.run()

	t.mu.Lock()
	for _, b := range t.targets {
		b.reset()
	}
	t.run++
	t.playing = true
	t.direction = Forward
	t.startTime = t.scheduler.clock.Now()
	t.mu.Unlock()

	id := t.scheduler.add(t)
	t.scheduler.logger.Printf("Started animation id=%d", id)
	return t
}

// Stop removes the task from the scheduler and runs the Then hook. Stopping
// an idle task does nothing.
func (t *Task) Stop() *Task {
	t.mu.Lock()
	t.stopLocked()
	return t
}

// finish stops the task at the end of the play it was ticked in. A task
// replayed in the meantime keeps running.
func (t *Task) finish(run uint64) {
	t.mu.Lock()
	if t.run != run {
		t.mu.Unlock()
		return
	}
	t.stopLocked()
}

// stopLocked is called with t.mu held and releases it.
func (t *Task) stopLocked() {
	wasPlaying := t.playing
	t.playing = false
	then := t.then
	t.mu.Unlock()

	id := t.scheduler.remove(t)
	if !wasPlaying {
		return
	}
	t.scheduler.logger.Printf("Stopped animation id=%d", id)
	then.run()
}

// abort stops the task without running hooks.
func (t *Task) abort() {
	t.mu.Lock()
	t.playing = false
	t.mu.Unlock()
	t.scheduler.remove(t)
}

// ID returns the id the task was given when it started playing, or -1 when
// it is not active. The id stays the same until the task stops.
func (t *Task) ID() int {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	return t.id
}

// Playing reports whether the task is running.
func (t *Task) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// current reports whether the task is still in the given play.
func (t *Task) current(run uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing && t.run == run
}

// Direction returns the current traversal direction.
func (t *Task) Direction() Direction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.direction
}

// Duration returns the length of one cycle.
func (t *Task) Duration() time.Duration {
	return t.duration
}

// Err returns the first error recorded by a builder call.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) add(b binding) *Task {
	t.mu.Lock()
	t.targets = append(t.targets, b)
	t.mu.Unlock()
	return t
}

func (t *Task) fail(err error) *Task {
	t.mu.Lock()
	if t.err == nil {
		t.err = err
	}
	t.mu.Unlock()
	return t
}

// tick advances the task to now. Reaching the end of a cycle restarts the
// cycle at progress 0, flipping direction when oscillating. Reaching the end
// of a non-cycling task applies the targets once more with the final
// progress and then stops the task.
func (t *Task) tick(now time.Time) {
	t.mu.Lock()
	if !t.playing {
		t.mu.Unlock()
		return
	}

	elapsed := now.Sub(t.startTime)
	progress := float64(elapsed) / float64(t.duration)
	finished := false
	if elapsed >= t.duration {
		if t.cycle {
			if t.oscillate {
				t.direction = t.direction.Reverse()
			}
			progress = 0
			t.startTime = now
		} else {
			finished = true
			if t.settle {
				progress = 1
			}
		}
	}
	if t.cycle && t.direction == Backward {
		progress = 1 - progress
	}
	targets := t.targets
	run := t.run
	t.mu.Unlock()

	for _, b := range targets {
		if !t.current(run) {
			break
		}
		if err := b.apply(progress); err != nil {
			t.scheduler.logger.Printf("Animation id=%d: %v", t.ID(), err)
		}
	}

	if finished {
		t.finish(run)
	}
}

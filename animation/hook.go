package animation

// Hook is something to run when a task starts or stops: either a plain
// callback or another task to play.
type Hook struct {
	fn   func()
	task *Task
}

// Call makes a Hook that invokes fn.
func Call(fn func()) Hook {
	return Hook{fn: fn}
}

// Chain makes a Hook that plays t.
func Chain(t *Task) Hook {
	return Hook{task: t}
}

func (h Hook) run() {
	switch {
	case h.fn != nil:
		h.fn()
	case h.task != nil:
		h.task.Play()
	}
}

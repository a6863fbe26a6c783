package sandbox

import (
	"sync"

	"algoviz/internal/step"
)

// runCapture collects the steps and console records of one run. A timed-out
// run is abandoned rather than killed, so the interpreter goroutine may keep
// emitting long after Run has returned; every write goes through the mutex
// and is dropped once the capture is sealed, so the Result handed to the
// caller never changes underneath it.
type runCapture struct {
	mu      sync.Mutex
	sealed  bool
	steps   []step.Step
	console []ConsoleRecord
}

func (c *runCapture) addStep(s step.Step) {
	c.mu.Lock()
	if !c.sealed {
		c.steps = append(c.steps, s)
	}
	c.mu.Unlock()
}

func (c *runCapture) addConsole(r ConsoleRecord) {
	c.mu.Lock()
	if !c.sealed {
		c.console = append(c.console, r)
	}
	c.mu.Unlock()
}

// seal freezes the capture and hands over everything collected so far.
// Later writes are discarded, so the returned slices are safe to expose.
func (c *runCapture) seal() (steps []step.Step, console []ConsoleRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true
	return c.steps, c.console
}

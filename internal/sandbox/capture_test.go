package sandbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/step"
)

func TestCaptureSealDropsLateWrites(t *testing.T) {
	c := &runCapture{}
	c.addStep(step.Step{Type: "push"})
	c.addConsole(ConsoleRecord{Level: "log"})

	steps, console := c.seal()
	require.Len(t, steps, 1)
	require.Len(t, console, 1)

	// Writes after seal come from an abandoned run and go nowhere.
	c.addStep(step.Step{Type: "pop"})
	c.addConsole(ConsoleRecord{Level: "error"})

	stepsAgain, consoleAgain := c.seal()
	assert.Len(t, stepsAgain, 1)
	assert.Len(t, consoleAgain, 1)
}

func TestCaptureConcurrentWriters(t *testing.T) {
	c := &runCapture{}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.addStep(step.Step{Type: "push"})
			}
		}()
	}
	wg.Wait()

	steps, _ := c.seal()
	assert.Len(t, steps, 400)
}

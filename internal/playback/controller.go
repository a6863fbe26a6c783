// Package playback steps a consumer through captured operation streams:
// manual next/previous navigation, auto-play on a ticker, and view modes
// backed by different step sources.
package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"algoviz/internal/config"
	"algoviz/internal/logging"
	"algoviz/internal/step"
)

// Mode selects what the playback view shows.
type Mode string

const (
	// ModeUserCode plays the step stream from the learner's last run.
	ModeUserCode Mode = "user-code"
	// ModeExpectedOutput plays the scenario's canonical operation script.
	ModeExpectedOutput Mode = "expected-output"
	// ModeReference plays the bundled reference solution's stream.
	ModeReference Mode = "reference"
	// ModeComparison plays user and reference streams side by side.
	ModeComparison Mode = "comparison"
	// ModeSkeleton shows the scenario skeleton with no playback.
	ModeSkeleton Mode = "skeleton"
)

// Source identifies one step stream held by the controller.
type Source string

const (
	SourceUserCode       Source = "userCode"
	SourceExpectedOutput Source = "expectedOutput"
	SourceReference      Source = "reference"
)

// sourcesFor maps a mode to the streams it needs populated.
func sourcesFor(mode Mode) []Source {
	switch mode {
	case ModeUserCode:
		return []Source{SourceUserCode}
	case ModeExpectedOutput:
		return []Source{SourceExpectedOutput}
	case ModeReference:
		return []Source{SourceReference}
	case ModeComparison:
		return []Source{SourceUserCode, SourceReference}
	}
	return nil
}

// PopulateFunc is invoked off the caller's goroutine when a mode needs a
// stream the controller does not hold yet. Implementations run the sandbox
// or the script replay and hand the result back through SetSteps.
type PopulateFunc func(Source)

// Controller owns the playback cursor and the auto-play ticker. All methods
// are safe for concurrent use.
type Controller struct {
	cfg      config.PlaybackConfig
	log      *zap.Logger
	populate PopulateFunc
	group    singleflight.Group

	mu        sync.Mutex
	mode      Mode
	cursor    int
	playing   bool
	runnable  bool
	stop      chan struct{}
	steps     map[Source][]step.Step
	requested map[Source]bool
}

// New creates a controller in user-code mode. populate may be nil when the
// caller preloads every stream it intends to show.
func New(cfg config.PlaybackConfig, populate PopulateFunc) *Controller {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = config.DefaultPlaybackConfig().TickInterval
	}
	return &Controller{
		cfg:       cfg,
		log:       logging.Get(logging.CategoryPlayback),
		populate:  populate,
		mode:      ModeUserCode,
		runnable:  true,
		steps:     map[Source][]step.Step{},
		requested: map[Source]bool{},
	}
}

// Mode returns the selected mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

/// EffectiveMode is the mode actually rendered: user-code degrades to the
// skeleton view while the code is not runnable or no user stream exists, so
// a stale user timeline is never shown.
func (c *Controller) EffectiveMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeUserCode && (!c.runnable || len(c.steps[SourceUserCode]) == 0) {
		return ModeSkeleton
	}
	return c.mode
}

// SetRunnable records whether the current code would pass the pre-flight
// gate. While false, user-code mode renders as skeleton and any running
// playback of the user stream stops.
func (c *Controller) SetRunnable(runnable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runnable = runnable
	if !runnable && c.mode == ModeUserCode {
		c.stopLocked()
	}
}

// SetMode switches the view, stops any running playback, and resets the
// cursor. Streams the new mode needs but the controller lacks are requested
// from the populate callback, once per source.
func (c *Controller) SetMode(mode Mode) {
	c.mu.Lock()
	c.stopLocked()
	c.mode = mode
	c.cursor = 0
	var missing []Source
	for _, src := range sourcesFor(mode) {
		if len(c.steps[src]) == 0 && !c.requested[src] {
			c.requested[src] = true
			missing = append(missing, src)
		}
	}
	c.mu.Unlock()

	for _, src := range missing {
		c.requestPopulation(src)
	}
}

func (c *Controller) requestPopulation(src Source) {
	if c.populate == nil {
		return
	}
	c.log.Debug("requesting stream population", zap.String("source", string(src)))
	go c.group.Do(string(src), func() (any, error) {
		c.populate(src)
		return nil, nil
	})
}

// SetSteps replaces one stream. Playback pauses and the cursor resets so a
// stale position never outlives the data it pointed into. An empty slice
// clears the stream and re-arms the population request for it.
func (c *Controller) SetSteps(src Source, steps []step.Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.steps[src] = append([]step.Step(nil), steps...)
	c.requested[src] = len(steps) > 0
	c.cursor = 0
}

// Steps returns a copy of one stream.
func (c *Controller) Steps(src Source) []step.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]step.Step(nil), c.steps[src]...)
}

// Cursor returns the current playback position.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// length is the playable step count for the current mode. Comparison mode
// is bounded by the shorter stream so both sides always have a frame.
func (c *Controller) lengthLocked() int {
	switch c.mode {
	case ModeComparison:
		left := len(c.steps[SourceUserCode])
		right := len(c.steps[SourceReference])
		if left < right {
			return left
		}
		return right
	case ModeSkeleton:
		return 0
	default:
		srcs := sourcesFor(c.mode)
		if len(srcs) == 0 {
			return 0
		}
		return len(c.steps[srcs[0]])
	}
}

// Next advances the cursor, reporting whether it moved.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextLocked()
}

func (c *Controller) nextLocked() bool {
	if c.cursor+1 >= c.lengthLocked() {
		return false
	}
	c.cursor++
	return true
}

// Previous moves the cursor back, reporting whether it moved.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == 0 {
		return false
	}
	c.cursor--
	return true
}

// Seek jumps to a position, clamped into the playable range.
func (c *Controller) Seek(pos int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.lengthLocked()
	switch {
	case n == 0 || pos < 0:
		c.cursor = 0
	case pos >= n:
		c.cursor = n - 1
	default:
		c.cursor = pos
	}
}

// Current returns the step under the cursor for single-stream modes.
func (c *Controller) Current() (step.Step, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	srcs := sourcesFor(c.mode)
	if len(srcs) != 1 {
		return step.Step{}, false
	}
	steps := c.steps[srcs[0]]
	if c.cursor >= len(steps) {
		return step.Step{}, false
	}
	return steps[c.cursor], true
}

// CurrentPair returns the user and reference steps under the cursor in
// comparison mode.
func (c *Controller) CurrentPair() (user, ref step.Step, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeComparison || c.cursor >= c.lengthLocked() {
		return step.Step{}, step.Step{}, false
	}
	return c.steps[SourceUserCode][c.cursor], c.steps[SourceReference][c.cursor], true
}

// Playing reports whether auto-play is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Play starts auto-advance on the configured tick. It is a no-op while
// already playing or when the current mode has nothing left to play; the
// ticker pauses itself at the last step.
func (c *Controller) Play() {
	c.mu.Lock()
	if c.playing || c.cursor+1 >= c.lengthLocked() {
		c.mu.Unlock()
		return
	}
	c.playing = true
	c.stop = make(chan struct{})
	stop := c.stop
	c.mu.Unlock()

	go c.run(stop)
}

func (c *Controller) run(stop chan struct{}) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if !c.playing || c.stop != stop {
				c.mu.Unlock()
				return
			}
			if !c.nextLocked() {
				c.playing = false
				c.stop = nil
				c.mu.Unlock()
				c.log.Debug("playback reached end")
				return
			}
			c.mu.Unlock()
		}
	}
}

// Pause stops auto-advance. The cursor stays where it is.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// stopLocked halts the play goroutine. Callers hold c.mu.
func (c *Controller) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.playing = false
}

// Reset clears every stream and returns to user-code mode, re-arming all
// population requests.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.mode = ModeUserCode
	c.runnable = true
	c.cursor = 0
	c.steps = map[Source][]step.Step{}
	c.requested = map[Source]bool{}
}

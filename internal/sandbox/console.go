package sandbox

import (
	"bytes"
	"sync"
	"time"
)

// ConsoleRecord is one line of console output produced by learner code,
// tagged with the stream it came from and when it was flushed.
type ConsoleRecord struct {
	Level     string    `json:"level"` // "log" for stdout, "error" for stderr
	Args      []any     `json:"args"`
	Timestamp time.Time `json:"timestamp"`
}

// consoleWriter buffers a stream and converts each completed line into a
// ConsoleRecord as it arrives, so record timestamps reflect emission time
// rather than run completion. Records flow into the run capture, which
// drops them once the run's result has been sealed.
type consoleWriter struct {
	level   string
	capture *runCapture
	mu      sync.Mutex
	buf     bytes.Buffer
}

func newConsoleWriter(level string, capture *runCapture) *consoleWriter {
	return &consoleWriter{level: level, capture: capture}
}

func (w *consoleWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line: keep it buffered until the newline arrives.
			w.buf.WriteString(line)
			break
		}
		w.record(line[:len(line)-1])
	}
	return len(p), nil
}

// flush records any trailing output that never saw a newline.
func (w *consoleWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.record(w.buf.String())
		w.buf.Reset()
	}
}

func (w *consoleWriter) record(line string) {
	w.capture.addConsole(ConsoleRecord{
		Level:     w.level,
		Args:      []any{line},
		Timestamp: time.Now(),
	})
}

package planio

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultAutosaveDelay batches rapid edits into one disk write.
const DefaultAutosaveDelay = 800 * time.Millisecond

// Autosaver debounces plan writes. Callers capture the document bytes on
// the editing thread and hand them over; only the byte slice crosses into
// the timer goroutine, so the live scene is never touched off-thread.
type Autosaver struct {
	path  string
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
}

func NewAutosaver(path string, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{path: path, delay: delay}
}

// Schedule queues blob for writing after the debounce delay, replacing any
// not-yet-written blob.
func (a *Autosaver) Schedule(blob []byte) {
	if blob == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = blob
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.write)
}

func (a *Autosaver) write() {
	a.mu.Lock()
	blob := a.pending
	a.pending = nil
	a.mu.Unlock()
	if blob == nil {
		return
	}
	if err := writeFileAtomic(a.path, blob); err != nil {
		slog.Error("autosave failed", "path", a.path, "err", err)
	}
}

// Flush writes any pending blob immediately.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.write()
}

// Stop drops any pending write.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

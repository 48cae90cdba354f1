package files

import (
	"bytes"
	"sync"
	"time"

	"github.com/shokunin/langotango/pkg/workspace"
)

// AutoSaver writes a project periodically. Snapshot runs on the goroutine
// that owns the workspace; Write may run anywhere and concurrent writes are
// applied one at a time. Failures are logged and reported to the caller,
// never panicked on.
type AutoSaver struct {
	Path     string
	Interval time.Duration
	Options  SaveOptions

	mu   sync.Mutex
	last []byte

	// writeMu is held for the whole of Write
	writeMu sync.Mutex
}

// NewAutoSaver creates an auto-saver. A non-positive interval disables it.
func NewAutoSaver(path string, interval time.Duration, opts SaveOptions) *AutoSaver {
	return &AutoSaver{Path: path, Interval: interval, Options: opts}
}

// Enabled reports whether periodic saving is on.
func (a *AutoSaver) Enabled() bool {
	return a != nil && a.Path != "" && a.Interval > 0
}

// MarkSaved records data as the content already on disk.
func (a *AutoSaver) MarkSaved(data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = append(a.last[:0], data...)
}

// Snapshot encodes the workspace and reports whether it differs from the
// last saved bytes.
func (a *AutoSaver) Snapshot(ws *workspace.Workspace) ([]byte, bool, error) {
	data, err := workspace.Marshal(ws)
	if err != nil {
		return nil, false, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return data, !bytes.Equal(data, a.last), nil
}

// Write saves data atomically and remembers it as the saved state.
func (a *AutoSaver) Write(data []byte) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	if err := WriteAtomic(a.Path, data, a.Options); err != nil {
		a.Options.Logger.Warn().Err(err).Str("path", a.Path).Msg("auto-save failed")
		return err
	}
	a.MarkSaved(data)
	a.Options.Logger.Debug().Str("path", a.Path).Msg("auto-saved")
	return nil
}

package models

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"simple-image-editor/internal/logger"
)

var (
	// ErrNoImage is returned by edits and saves when nothing is loaded.
	ErrNoImage = errors.New("no image loaded")
	// ErrEmptyHistory reports an undo with nothing to undo. It is a no-op,
	// not a failure.
	ErrEmptyHistory = errors.New("no more operations to undo")
)

// Operation is a pure image transform applied by EditSession.Apply.
type Operation interface {
	Name() string
	// Validate checks the parameters against the image about to be edited.
	Validate(img *image.NRGBA) error
	Apply(img *image.NRGBA) (*image.NRGBA, error)
}

// EditSession owns the one open document: the current image and its undo
// history. It is created once in main and passed to whoever needs it.
type EditSession struct {
	mu      sync.RWMutex
	current *ImageData
	history *History
	logger  logger.Logger
}

// NewEditSession creates an empty session whose history keeps at most
// historyLimit snapshots
func NewEditSession(historyLimit int, log logger.Logger) *EditSession {
	return &EditSession{
		history: NewHistory(historyLimit),
		logger:  log,
	}
}

// Load replaces the current image and discards all undo state
func (s *EditSession) Load(img *ImageData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := s.history.Len()
	s.history.Clear()
	s.current = img

	s.logger.Info("EditSession", "image loaded", map[string]interface{}{
		"source":          img.Source,
		"format":          img.Format,
		"width":           img.Width,
		"height":          img.Height,
		"history_dropped": dropped,
	})
}

// Current returns the current image, or nil when nothing is loaded
func (s *EditSession) Current() *ImageData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Apply runs op on the current image. The pre-edit image is pushed onto the
// history before the edit; if the edit fails the push is rolled back, so the
// history only grows together with a successful edit.
func (s *EditSession) Apply(op Operation) (*ImageData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoImage
	}

	if err := op.Validate(s.current.Image); err != nil {
		return nil, err
	}

	before := s.current
	evicted := s.history.Push(before)

	result, err := op.Apply(before.Image)
	if err == nil && result == nil {
		err = fmt.Errorf("%s produced no image", op.Name())
	}
	if err != nil {
		s.history.Pop()
		s.history.restoreOldest(evicted)
		s.logger.Warning("EditSession", "edit failed, history rolled back", map[string]interface{}{
			"operation": op.Name(),
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%s failed: %w", op.Name(), err)
	}

	s.current = before.Derive(result)

	s.logger.Debug("EditSession", "edit applied", map[string]interface{}{
		"operation":    op.Name(),
		"width":        s.current.Width,
		"height":       s.current.Height,
		"history_size": s.history.Len(),
		"evicted":      evicted != nil,
	})

	return s.current, nil
}

// Undo restores the most recent snapshot. With an empty history it returns
// ErrEmptyHistory and leaves the session untouched.
func (s *EditSession) Undo() (*ImageData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.history.Pop()
	if !ok {
		return s.current, ErrEmptyHistory
	}
	s.current = previous

	s.logger.Debug("EditSession", "edit undone", map[string]interface{}{
		"width":        previous.Width,
		"height":       previous.Height,
		"history_size": s.history.Len(),
	})

	return previous, nil
}

// Dimensions reports the size of the current image; ok is false when
// nothing is loaded
func (s *EditSession) Dimensions() (width, height int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return 0, 0, false
	}
	return s.current.Width, s.current.Height, true
}

// CanUndo reports whether Undo would restore something
func (s *EditSession) CanUndo() bool {
	return s.HistoryLen() > 0
}

// HistoryLen returns the number of undoable edits
func (s *EditSession) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// Stats returns memory statistics about the session
func (s *EditSession) Stats() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SessionStats{
		HasImage:        s.current != nil,
		HistorySize:     s.history.Len(),
		HistoryCapacity: s.history.Cap(),
		MemoryUsage:     s.current.MemoryUsage() + s.history.MemoryUsage(),
	}
}

// SessionStats contains statistics about the session
type SessionStats struct {
	HasImage        bool
	HistorySize     int
	HistoryCapacity int
	MemoryUsage     int64
}

// Shutdown releases every image the session holds
func (s *EditSession) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Clear()
	s.current = nil
}

package connectivity

import (
	"context"
	"sync"

	"github.com/aaravmahajanofficial/inventory-client/internal/metrics"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
)

// State holds the session mode. It starts Unknown and moves to Online or
// Offline exactly once.
type State struct {
	mu   sync.RWMutex
	mode models.Mode
	done chan struct{}
}

func NewState() *State {
	return &State{
		mode: models.ModeUnknown,
		done: make(chan struct{}),
	}
}

// NewResolvedState returns a State already pinned to mode.
func NewResolvedState(mode models.Mode) *State {
	s := NewState()
	s.Resolve(mode)
	return s
}

func (s *State) Mode() models.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

// Resolve pins the mode. It returns false, leaving the state untouched, when
// the mode is already resolved or mode is not a resolved value.
func (s *State) Resolve(mode models.Mode) bool {
	if !mode.Resolved() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode.Resolved() {
		return false
	}

	s.mode = mode
	close(s.done)
	metrics.SetMode(string(mode))

	return true
}

// Wait blocks until the mode is resolved or ctx is done.
func (s *State) Wait(ctx context.Context) (models.Mode, error) {
	select {
	case <-s.done:
		return s.Mode(), nil
	case <-ctx.Done():
		return models.ModeUnknown, ctx.Err()
	}
}

package viewmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Scope owns the tasks launched by a view-model. Closing it cancels their
// context and discards any state reduction they attempt afterwards.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewScope(parent context.Context, logger *log.Logger) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel, logger: logger}
}

func (s *Scope) Context() context.Context {
	return s.ctx
}

// Launch runs fn on its own goroutine. It reports false once the scope is
// closed. A panic inside fn is logged and swallowed.
func (s *Scope) Launch(name string, fn func(ctx context.Context)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panicked", "task", name, "panic", fmt.Sprint(r))
			}
		}()
		fn(s.ctx)
	}()
	return true
}

// apply runs a reduction unless the scope is closed. Reductions are
// serialised, so each one sees the result of the previous.
func (s *Scope) apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	fn()
	return true
}

// Wait blocks until every launched task has returned.
func (s *Scope) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight tasks and waits for them. It is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

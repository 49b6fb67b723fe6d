package viewmodel

import (
	"errors"
	"sync"
)

var ErrObserverActive = errors.New("a message observer is already active")

const messageBuffer = 16

// Messages is a one-shot channel of user-facing notifications. At most one
// observer is active; a message emitted while nobody listens is dropped and a
// later observer never sees it.
type Messages struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

func NewMessages() *Messages {
	return &Messages{}
}

// Observe attaches the single observer. Call stop to detach.
func (m *Messages) Observe() (<-chan string, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, errors.New("messages closed")
	}
	if m.ch != nil {
		return nil, nil, ErrObserverActive
	}

	ch := make(chan string, messageBuffer)
	m.ch = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.ch == ch {
				m.ch = nil
				close(ch)
			}
		})
	}, nil
}

// Emit hands msg to the active observer without blocking. It reports
// whether the message was delivered.
func (m *Messages) Emit(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil {
		return false
	}
	select {
	case m.ch <- msg:
		return true
	default:
		return false
	}
}

func (m *Messages) close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.ch != nil {
		close(m.ch)
		m.ch = nil
	}
}

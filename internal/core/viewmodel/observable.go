package viewmodel

import "sync"

// Observable holds the latest snapshot of a state and republishes it to
// watchers. A slow watcher only ever sees the newest value.
type Observable[S any] struct {
	mu       sync.Mutex
	value    S
	watchers map[int]chan S
	nextID   int
	closed   bool
}

func NewObservable[S any](initial S) *Observable[S] {
	return &Observable[S]{value: initial, watchers: make(map[int]chan S)}
}

func (o *Observable[S]) Value() S {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Watch returns a channel primed with the current value. The returned stop
// function closes the channel.
func (o *Observable[S]) Watch() (<-chan S, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan S, 1)
	if o.closed {
		close(ch)
		return ch, func() {}
	}

	id := o.nextID
	o.nextID++
	o.watchers[id] = ch
	ch <- o.value

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if w, ok := o.watchers[id]; ok {
				delete(o.watchers, id)
				close(w)
			}
		})
	}
}

func (o *Observable[S]) set(v S) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.publish(v)
}

// update applies fn atomically; the value is published only if fn reports
// a change.
func (o *Observable[S]) update(fn func(S) (S, bool)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, changed := fn(o.value)
	if changed {
		o.publish(next)
	}
	return changed
}

func (o *Observable[S]) publish(v S) {
	if o.closed {
		return
	}
	o.value = v
	for _, ch := range o.watchers {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

func (o *Observable[S]) close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true
	for id, ch := range o.watchers {
		delete(o.watchers, id)
		close(ch)
	}
}

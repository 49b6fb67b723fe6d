// Package viewmodel holds the screen state machines: what a screen renders
// (ContentState), the lifecycle of a form submission (SaveState) and the
// one-shot message channel. Each view-model runs one task per invocation
// inside a Scope that is cancelled when the screen goes away.
package viewmodel

// ContentState is the closed set Loading, Loaded and LoadFailed. Consumers
// switch on the concrete type.
type ContentState[T any] interface {
	contentState(T)
}

type Loading[T any] struct{}

type Loaded[T any] struct {
	Data T
}

type LoadFailed[T any] struct {
	Message string
}

func (Loading[T]) contentState(T)    {}
func (Loaded[T]) contentState(T)     {}
func (LoadFailed[T]) contentState(T) {}

// LoadedData returns the payload of a Loaded state.
func LoadedData[T any](s ContentState[T]) (T, bool) {
	if l, ok := s.(Loaded[T]); ok {
		return l.Data, true
	}
	var zero T
	return zero, false
}

// SaveState is the closed set Idle, Saving, SaveSuccess and SaveFailed.
//
//	Idle --submit--> Saving --ok--> SaveSuccess --reset--> Idle
//	                 Saving --err-> SaveFailed  --reset--> Idle
type SaveState interface {
	saveState()
}

type Idle struct{}

type Saving struct{}

type SaveSuccess struct{}

type SaveFailed struct {
	Message string
}

func (Idle) saveState()        {}
func (Saving) saveState()      {}
func (SaveSuccess) saveState() {}
func (SaveFailed) saveState()  {}

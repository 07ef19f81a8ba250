package deferred

import "sync"

// Single represents at most one eventual value or failure. It starts lazily:
// the start function supplied at construction runs at most once, kicked off by
// Wait, OnResolve, or Trigger.
type Single[T any] struct {
	start     func()
	startOnce sync.Once

	mu       sync.Mutex
	resolved bool
	value    T
	err      error
	done     chan struct{}
}

// NewSingle returns a pending Single whose underlying operation begins when
// the start function runs. A nil start is allowed for results resolved
// externally.
func NewSingle[T any](start func()) *Single[T] {
	return &Single[T]{start: start, done: make(chan struct{})}
}

// Trigger begins execution without requiring a consumer. Side effects of the
// start function happen at most once.
func (s *Single[T]) Trigger() {
	s.startOnce.Do(func() {
		if s.start != nil {
			s.start()
		}
	})
}

// Complete fulfils the result with a value. Resolution attempts after the
// first are ignored.
func (s *Single[T]) Complete(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved {
		return
	}
	s.resolved = true
	s.value = value
	close(s.done)
}

// Fail resolves the result with a failure. Resolution attempts after the
// first are ignored.
func (s *Single[T]) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved {
		return
	}
	s.resolved = true
	s.err = err
	close(s.done)
}

// Wait triggers execution if needed and blocks until resolution.
func (s *Single[T]) Wait() (T, error) {
	s.Trigger()
	<-s.done
	return s.value, s.err
}

// OnResolve triggers execution if needed and registers a callback invoked
// exactly once with the value or failure. The callback may run on the
// goroutine that resolves the result.
func (s *Single[T]) OnResolve(fn func(T, error)) {
	s.Trigger()
	go func() {
		<-s.done
		fn(s.value, s.err)
	}()
}

package deferred

import "sync"

type streamListener[T any] struct {
	next func(T)
	done func(error)
}

// Stream represents zero or more eventual values terminated by completion or
// failure. Like Single it starts lazily. Listener callbacks are invoked while
// the stream's lock is held so emission order is preserved; callbacks must not
// call back into the stream.
type Stream[T any] struct {
	start     func()
	startOnce sync.Once

	mu        sync.Mutex
	values    []T
	terminal  bool
	err       error
	done      chan struct{}
	listeners []streamListener[T]
}

// NewStream returns an open Stream whose underlying operation begins when the
// start function runs. A nil start is allowed for streams fed externally.
func NewStream[T any](start func()) *Stream[T] {
	return &Stream[T]{start: start, done: make(chan struct{})}
}

// Trigger begins execution without requiring a consumer.
func (s *Stream[T]) Trigger() {
	s.startOnce.Do(func() {
		if s.start != nil {
			s.start()
		}
	})
}

// Emit delivers one value to every listener. Values emitted after the stream
// reached a terminal state are dropped.
func (s *Stream[T]) Emit(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.values = append(s.values, value)
	for _, l := range s.listeners {
		l.next(value)
	}
}

// Close marks the stream complete. Attempts after the first terminal
// transition are ignored.
func (s *Stream[T]) Close() {
	s.finish(nil)
}

// Fail marks the stream failed. Attempts after the first terminal transition
// are ignored.
func (s *Stream[T]) Fail(err error) {
	s.finish(err)
}

func (s *Stream[T]) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.terminal = true
	s.err = err
	close(s.done)
	for _, l := range s.listeners {
		if l.done != nil {
			l.done(err)
		}
	}
	s.listeners = nil
}

// OnEach triggers execution if needed and registers callbacks: next runs once
// per value (already-emitted values are replayed in order), done runs once
// when the stream closes or fails.
func (s *Stream[T]) OnEach(next func(T), done func(error)) {
	s.Trigger()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.values {
		next(v)
	}
	if s.terminal {
		if done != nil {
			done(s.err)
		}
		return
	}
	s.listeners = append(s.listeners, streamListener[T]{next: next, done: done})
}

// Collect triggers execution if needed and blocks until the stream reaches a
// terminal state, returning every emitted value and the failure, if any.
func (s *Stream[T]) Collect() ([]T, error) {
	s.Trigger()
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	values := make([]T, len(s.values))
	copy(values, s.values)
	return values, s.err
}

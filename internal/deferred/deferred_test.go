package deferred_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"conduit/internal/deferred"
)

func TestSingleLazyStart(t *testing.T) {
	var started atomic.Int32
	s := deferred.NewSingle[string](func() {
		started.Add(1)
	})
	if got := started.Load(); got != 0 {
		t.Fatalf("start ran before any consumer: %d", got)
	}
	s.Trigger()
	s.Trigger()
	if got := started.Load(); got != 1 {
		t.Fatalf("expected exactly one start, got %d", got)
	}
}

func TestSingleWaitReturnsValue(t *testing.T) {
	var s *deferred.Single[string]
	s = deferred.NewSingle[string](func() {
		go s.Complete("hello")
	})
	value, err := s.Wait()
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if value != "hello" {
		t.Fatalf("expected hello, got %q", value)
	}
}

func TestSingleWaitReturnsFailure(t *testing.T) {
	boom := errors.New("boom")
	var s *deferred.Single[string]
	s = deferred.NewSingle[string](func() {
		go s.Fail(boom)
	})
	if _, err := s.Wait(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestSingleSecondResolutionIgnored(t *testing.T) {
	s := deferred.NewSingle[int](nil)
	s.Complete(1)
	s.Complete(2)
	s.Fail(errors.New("late"))
	value, err := s.Wait()
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if value != 1 {
		t.Fatalf("expected first resolution to win, got %d", value)
	}
}

func TestSingleOnResolveInvokedOnce(t *testing.T) {
	var s *deferred.Single[string]
	s = deferred.NewSingle[string](func() {
		go s.Complete("done")
	})
	calls := make(chan string, 2)
	s.OnResolve(func(v string, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		calls <- v
	})
	select {
	case v := <-calls:
		if v != "done" {
			t.Fatalf("expected done, got %q", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never invoked")
	}
	select {
	case <-calls:
		t.Fatal("callback invoked more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSingleTriggerWithoutConsumer(t *testing.T) {
	executed := make(chan struct{})
	s := deferred.NewSingle[string](func() {
		close(executed)
	})
	s.Trigger()
	select {
	case <-executed:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger did not start execution")
	}
}

func TestStreamEmitAndCollect(t *testing.T) {
	var s *deferred.Stream[int]
	s = deferred.NewStream[int](func() {
		go func() {
			s.Emit(1)
			s.Emit(2)
			s.Emit(3)
			s.Close()
		}()
	})
	values, err := s.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(values) != 3 || values[0] != 1 || values[1] != 2 || values[2] != 3 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestStreamFailure(t *testing.T) {
	boom := errors.New("boom")
	s := deferred.NewStream[int](nil)
	s.Emit(7)
	s.Fail(boom)
	s.Emit(8)
	values, err := s.Collect()
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(values) != 1 || values[0] != 7 {
		t.Fatalf("expected values emitted before failure, got %v", values)
	}
}

func TestStreamOnEachReplaysAndCompletes(t *testing.T) {
	s := deferred.NewStream[string](nil)
	s.Emit("a")
	s.Emit("b")

	var got []string
	completed := false
	s.OnEach(func(v string) {
		got = append(got, v)
	}, func(err error) {
		if err != nil {
			t.Errorf("unexpected failure: %v", err)
		}
		completed = true
	})

	s.Emit("c")
	s.Close()
	s.Close()

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected delivery order: %v", got)
	}
	if !completed {
		t.Fatal("completion callback never invoked")
	}
}

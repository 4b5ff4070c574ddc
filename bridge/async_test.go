package bridge

import (
	"strings"
	"sync"
	"testing"

	"github.com/zouxu09/wef/value"
)

// manualSpawner queues tasks and runs them only when told to, so tests
// can observe the window between dispatch and completion.
type manualSpawner struct {
	mu    sync.Mutex
	tasks []func()
}

func (s *manualSpawner) spawn(task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

func (s *manualSpawner) runAll() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

func (s *manualSpawner) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func TestAsync_SlowEcho(t *testing.T) {
	spawner := &manualSpawner{}
	registry := NewBuilder().
		WithSpawner(spawner.spawn).
		RegisterAsync("slow_echo", func(s string) string { return s }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "slow_echo", []value.Value{value.String("hi")}, cb)

	// Dispatch returned; the work is scheduled but not yet run.
	if rec.completed() {
		t.Fatal("completed before the spawner ran the task")
	}
	if spawner.pending() != 1 {
		t.Fatalf("pending = %d, want 1", spawner.pending())
	}

	spawner.runAll()

	if rec.successes != 1 {
		t.Fatalf("successes = %d, want 1", rec.successes)
	}
	if rec.response != `"hi"` {
		t.Errorf("response = %q", rec.response)
	}
	if rec.released != 1 {
		t.Errorf("released = %d, want 1", rec.released)
	}
}

func TestAsync_ArityCheckedBeforeSpawn(t *testing.T) {
	spawner := &manualSpawner{}
	registry := NewBuilder().
		WithSpawner(spawner.spawn).
		RegisterAsync("one", func(s string) string { return s }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "one", nil, cb)

	// Arity failures complete synchronously; nothing reaches the spawner.
	if spawner.pending() != 0 {
		t.Errorf("pending = %d, want 0", spawner.pending())
	}
	if rec.failure != "Invalid number of arguments, expected 1, got 0" {
		t.Errorf("failure = %q", rec.failure)
	}
}

func TestAsync_DecodeErrorSurfacesViaSpawner(t *testing.T) {
	spawner := &manualSpawner{}
	registry := NewBuilder().
		WithSpawner(spawner.spawn).
		RegisterAsync("typed", func(n int) int { return n }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "typed", []value.Value{value.String("nope")}, cb)

	if rec.completed() {
		t.Fatal("decode runs inside the task, not on the dispatch goroutine")
	}
	spawner.runAll()

	if !strings.HasPrefix(rec.failure, "Invalid argument arg0: ") {
		t.Errorf("failure = %q", rec.failure)
	}
}

func TestAsync_PanicCompletesOnce(t *testing.T) {
	spawner := &manualSpawner{}
	registry := NewBuilder().
		WithSpawner(spawner.spawn).
		RegisterAsync("explode", func() { panic("late kaboom") }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "explode", nil, cb)
	spawner.runAll()

	if rec.failures != 1 || rec.successes != 0 {
		t.Fatalf("failures = %d successes = %d", rec.failures, rec.successes)
	}
	if !strings.Contains(rec.failure, "late kaboom") {
		t.Errorf("failure = %q", rec.failure)
	}
}

func TestAsync_SyncRegistrationStillInline(t *testing.T) {
	spawner := &manualSpawner{}
	registry := NewBuilder().
		WithSpawner(spawner.spawn).
		Register("now", func() string { return "now" }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "now", nil, cb)

	if rec.response != `"now"` {
		t.Errorf("response = %q; sync handlers complete inline", rec.response)
	}
	if spawner.pending() != 0 {
		t.Errorf("pending = %d, want 0", spawner.pending())
	}
}

func TestAsync_NilSpawnerIsWiringDefect(t *testing.T) {
	h := &asyncHandler{newFuncAdapter("f", func() {})}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("nil spawner should panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "spawner") {
			t.Errorf("panic = %v", r)
		}
	}()
	cb, _ := captureCallback()
	h.call(nil, nil, nil, cb)
}

func TestAsync_ConcurrentCompletions(t *testing.T) {
	var wg sync.WaitGroup
	registry := NewBuilder().
		WithSpawner(func(task func()) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				task()
			}()
		}).
		RegisterAsync("echo", func(n float64) float64 { return n }).
		Build()

	const calls = 32
	recs := make([]*completionRecord, calls)
	for i := 0; i < calls; i++ {
		cb, rec := captureCallback()
		recs[i] = rec
		registry.Call(nil, "echo", []value.Value{value.Number(float64(i))}, cb)
	}
	wg.Wait()

	for i, rec := range recs {
		if rec.successes != 1 {
			t.Errorf("call %d: successes = %d", i, rec.successes)
		}
	}
}

func TestWithSpawner_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil spawner should panic at build time")
		}
	}()
	NewBuilder().WithSpawner(nil)
}

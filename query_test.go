package wef

import (
	"errors"
	"testing"

	"github.com/zouxu09/wef/value"
)

func TestQueryCallback_Success(t *testing.T) {
	var (
		response string
		failures int
		released int
	)
	cb := NewQueryCallback(
		func(data []byte) { response = string(data) },
		func(string) { failures++ },
		func() { released++ },
	)

	cb.Result(value.Number(5), nil)

	if response != "5" {
		t.Errorf("response = %q, want 5", response)
	}
	if failures != 0 {
		t.Errorf("failures = %d, want 0", failures)
	}
	if released != 1 {
		t.Errorf("released = %d, want 1", released)
	}
}

func TestQueryCallback_Failure(t *testing.T) {
	var (
		successes int
		message   string
		released  int
	)
	cb := NewQueryCallback(
		func([]byte) { successes++ },
		func(msg string) { message = msg },
		func() { released++ },
	)

	cb.Result(value.Null(), errors.New("boom"))

	if successes != 0 {
		t.Errorf("successes = %d, want 0", successes)
	}
	if message != "boom" {
		t.Errorf("message = %q, want boom", message)
	}
	if released != 1 {
		t.Errorf("released = %d, want 1", released)
	}
}

func TestQueryCallback_DoubleCompletePanics(t *testing.T) {
	cb := NewQueryCallback(nil, nil, nil)
	cb.Result(value.Null(), nil)

	defer func() {
		if recover() == nil {
			t.Error("second completion should panic")
		}
	}()
	cb.Result(value.Null(), nil)
}

func TestQueryCallback_Discard(t *testing.T) {
	var (
		signals  int
		released int
	)
	cb := NewQueryCallback(
		func([]byte) { signals++ },
		func(string) { signals++ },
		func() { released++ },
	)

	cb.Discard()

	if signals != 0 {
		t.Errorf("signals = %d, want 0", signals)
	}
	if released != 1 {
		t.Errorf("released = %d, want 1", released)
	}

	defer func() {
		if recover() == nil {
			t.Error("completion after discard should panic")
		}
	}()
	cb.Result(value.Null(), nil)
}

func TestQueryCallback_NilFuncs(t *testing.T) {
	// All three funcs optional; completion must not panic.
	NewQueryCallback(nil, nil, nil).Result(value.String("ok"), nil)
	NewQueryCallback(nil, nil, nil).Result(value.Null(), errors.New("x"))
	NewQueryCallback(nil, nil, nil).Discard()
}

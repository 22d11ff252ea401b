package retained

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWith_EnsuresConstruction(t *testing.T) {
	built := 0
	owner := New(func() *fakeController {
		built++
		return &fakeController{Count: 42}
	})

	got := With(owner, func(c *fakeController) int { return c.Count })

	if got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if built != 1 {
		t.Errorf("Expected With to construct exactly once, got %d", built)
	}
}

func TestWith_ReturnsBodyResult(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{Name: "ctl", Count: 2}
	})

	type snapshot struct {
		Name  string
		Count int
	}

	got := With(owner, func(c *fakeController) snapshot {
		c.Count *= 10
		return snapshot{Name: c.Name, Count: c.Count}
	})

	if got != (snapshot{Name: "ctl", Count: 20}) {
		t.Errorf("Unexpected result: %+v", got)
	}
}

func TestWith_ErrorResultPassthrough(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{}
	})

	sentinel := errors.New("body failed")
	err := With(owner, func(*fakeController) error { return sentinel })

	if err != sentinel {
		t.Errorf("Expected the body's error unmodified, got %v", err)
	}

	if err := With(owner, func(*fakeController) error { return nil }); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestWith_PanicPropagates(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{}
	})

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("Expected body panic to reach the caller, got %v", r)
		}
	}()

	With(owner, func(*fakeController) int { panic("boom") })
}

func TestWithUnsafe_ResultAndErrorPassthrough(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{Name: "async"}
	})

	sentinel := errors.New("load failed")
	got, err := WithUnsafe(context.Background(), owner,
		func(ctx context.Context, c *fakeController) (string, error) {
			return c.Name, sentinel
		})

	if got != "async" {
		t.Errorf("Expected result passthrough, got %q", got)
	}
	if err != sentinel {
		t.Errorf("Expected error passthrough, got %v", err)
	}
}

func TestWithUnsafe_BlocksUntilBodyCompletes(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{}
	})

	var order []string
	for _, step := range []string{"first", "second"} {
		_, _ = WithUnsafe(context.Background(), owner,
			func(ctx context.Context, c *fakeController) (struct{}, error) {
				time.Sleep(time.Millisecond)
				order = append(order, step+" body")
				return struct{}{}, nil
			})
		order = append(order, step+" returned")
	}

	want := []string{"first body", "first returned", "second body", "second returned"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("Unexpected call order: %v", order)
		}
	}
}

func TestWithUnsafe_ContextPassthrough(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{}
	})

	type ctxKey struct{}
	parent := context.WithValue(context.Background(), ctxKey{}, "marker")

	_, _ = WithUnsafe(parent, owner,
		func(ctx context.Context, c *fakeController) (struct{}, error) {
			if ctx != parent {
				t.Error("Expected the caller's context, unmodified")
			}
			return struct{}{}, nil
		})

	// The wrapper performs no cancellation checks of its own: an already
	// cancelled context still reaches the body, which decides what to do.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	_, err := WithUnsafe(cancelled, owner,
		func(ctx context.Context, c *fakeController) (struct{}, error) {
			ran = true
			return struct{}{}, ctx.Err()
		})

	if !ran {
		t.Error("Expected the body to run despite cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected the body's ctx.Err(), got %v", err)
	}
}

// TestWithUnsafe_LostUpdate demonstrates the documented hazard rather than
// guarding against it: two in-flight WithUnsafe calls share the instance
// and can interleave a read-modify-write, losing an update. The schedule is
// forced with channels so the test is deterministic (and race-free: every
// conflicting access pair is ordered by a channel operation).
func TestWithUnsafe_LostUpdate(t *testing.T) {
	owner := New(func() *fakeController {
		return &fakeController{Count: 10}
	})
	owner.Value() // build before sharing

	aRead := make(chan struct{})
	bDone := make(chan struct{})
	aDone := make(chan struct{})

	go func() {
		defer close(aDone)
		_, _ = WithUnsafe(context.Background(), owner,
			func(ctx context.Context, c *fakeController) (struct{}, error) {
				v := c.Count // stale read
				close(aRead)
				<-bDone // suspension point: the other call runs here
				c.Count = v + 1
				return struct{}{}, nil
			})
	}()

	go func() {
		defer close(bDone)
		<-aRead
		_, _ = WithUnsafe(context.Background(), owner,
			func(ctx context.Context, c *fakeController) (struct{}, error) {
				c.Count++
				return struct{}{}, nil
			})
	}()

	<-aDone
	<-bDone

	// Two increments, but either sequential ordering would give 12.
	if got := owner.Value().Count; got != 11 {
		t.Errorf("Expected the lost update to leave 11, got %d", got)
	}
}

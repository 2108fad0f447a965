package dispatch

import (
	"errors"
	"testing"
	"time"
)

func TestMailboxDeliversInDueOrder(t *testing.T) {
	box := NewMailbox[string](8)
	box.Start()
	defer box.Stop()

	if err := box.PostAfter("later", 80*time.Millisecond); err != nil {
		t.Fatalf("post later: %v", err)
	}
	if err := box.PostAfter("sooner", 20*time.Millisecond); err != nil {
		t.Fatalf("post sooner: %v", err)
	}

	first := waitValue(t, box.C(), time.Second)
	second := waitValue(t, box.C(), time.Second)
	if first != "sooner" || second != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first, second)
	}
}

func TestMailboxKeepsPostingOrderForSameDueTime(t *testing.T) {
	box := NewMailbox[int](1)
	due := time.Now().Add(10 * time.Millisecond)
	for i := 0; i < 5; i++ {
		if err := box.PostAt(i, due); err != nil {
			t.Fatalf("post %d: %v", i, err)
		}
	}
	box.Start()
	defer box.Stop()

	for want := 0; want < 5; want++ {
		if got := waitValue(t, box.C(), time.Second); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestMailboxDoesNotDropWhenConsumerIsSlow(t *testing.T) {
	box := NewMailbox[int](1)
	box.Start()
	defer box.Stop()

	for i := 0; i < 25; i++ {
		if err := box.Post(i); err != nil {
			t.Fatalf("post %d: %v", i, err)
		}
	}

	time.Sleep(50 * time.Millisecond)
	for want := 0; want < 25; want++ {
		if got := waitValue(t, box.C(), time.Second); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
	if box.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d pending", box.Pending())
	}
}

func TestMailboxRejectsInvalidPosts(t *testing.T) {
	box := NewMailbox[string](1)
	if err := box.PostAt("bad", time.Time{}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	box.Stop()
	if err := box.Post("late"); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-box.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func TestMailboxStopClosesChannel(t *testing.T) {
	box := NewMailbox[string](1)
	box.Start()
	if err := box.PostAfter("never", time.Hour); err != nil {
		t.Fatalf("post: %v", err)
	}
	box.Stop()
	box.Stop()

	select {
	case _, ok := <-box.C():
		if ok {
			t.Fatal("expected no delivery after stop")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func waitValue[T any](t *testing.T, ch <-chan T, timeout time.Duration) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for value")
		var zero T
		return zero
	}
}

package mongo

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	t.Run("no caller deadline", func(t *testing.T) {
		ctx, cancel := WithTimeout(context.Background(), time.Second)
		defer cancel()

		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatal("expected a deadline")
		}
		if remaining := time.Until(deadline); remaining > time.Second {
			t.Errorf("remaining = %s, want <= 1s", remaining)
		}
	})

	t.Run("caller deadline is sooner", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer parentCancel()
		want, _ := parent.Deadline()

		ctx, cancel := WithTimeout(parent, time.Hour)
		defer cancel()

		got, _ := ctx.Deadline()
		if !got.Equal(want) {
			t.Errorf("deadline = %v, want caller's %v", got, want)
		}
	})

	t.Run("operation timeout is sooner", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), time.Hour)
		defer parentCancel()

		ctx, cancel := WithTimeout(parent, 10*time.Millisecond)
		defer cancel()

		got, _ := ctx.Deadline()
		if time.Until(got) > time.Second {
			t.Errorf("deadline %v should follow the operation timeout", got)
		}
	})
}

func TestNow_MillisecondPrecision(t *testing.T) {
	now := Now()
	if now.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", now.Location())
	}
	if now.Nanosecond()%int(time.Millisecond) != 0 {
		t.Errorf("Now() = %v has sub-millisecond precision", now)
	}
}

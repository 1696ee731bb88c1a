package clock

import (
	"context"
	"time"
)

// UTC is the default time source for usecases.
func UTC() time.Time { return time.Now().UTC() }

// Sleep waits for d or until ctx is done, whichever comes first.
// A non-positive d only reports ctx's state.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package service

import (
	"context"
	"time"
)

// RunSweeper calls svc.Sweep every interval until ctx is done. A non-positive
// interval disables sweeping; the call still blocks until ctx is done.
func RunSweeper(ctx context.Context, svc VerificationService, every time.Duration) error {
	if every <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			svc.Sweep(ctx)
		}
	}
}

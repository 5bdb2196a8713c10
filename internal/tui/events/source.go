package events

import (
	"context"
	"time"

	"github.com/gmwallet/gm/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Source produces background events until ctx is done.
type Source func(ctx context.Context, out chan<- Event) error

// Run starts every source and waits for them. The first failing source
// cancels the others and its error is returned.
func Run(ctx context.Context, out chan<- Event, sources ...Source) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, src := range sources {
		g.Go(func() error {
			return src(gctx, out)
		})
	}

	return g.Wait()
}

// Ticker emits a Tick every interval.
func Ticker(interval time.Duration) Source {
	return func(ctx context.Context, out chan<- Event) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				select {
				case out <- Tick{At: now}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// TrySend publishes ev without blocking the UI goroutine. A full queue
// drops the event.
func TrySend(out chan<- Event, ev Event) bool {
	if out == nil {
		return false
	}

	select {
	case out <- ev:
		return true
	default:
		logger.Log.Warnf("event queue full, dropping %T", ev)
		return false
	}
}

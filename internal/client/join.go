package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Join runs fns concurrently and waits for all of them. The first failure
// cancels the context the others see and is the only error returned, so a
// partially failed join is reported once.
func Join(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}

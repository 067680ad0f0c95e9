package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestJoin_AllSucceed(t *testing.T) {
	var calls atomic.Int32
	fn := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	if err := Join(context.Background(), fn, fn, fn); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestJoin_PartialFailureReportedOnce(t *testing.T) {
	boom := errors.New("assigned list failed")
	sawCancel := make(chan bool, 1)

	err := Join(context.Background(),
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				sawCancel <- true
				return ctx.Err()
			case <-time.After(5 * time.Second):
				sawCancel <- false
				return nil
			}
		},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("Join() error = %v, want %v", err, boom)
	}
	if !<-sawCancel {
		t.Error("sibling fetch was not cancelled after the first failure")
	}
}

func TestJoin_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Join(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Join() error = %v, want context.Canceled", err)
	}
}

func TestJoin_Empty(t *testing.T) {
	if err := Join(context.Background()); err != nil {
		t.Errorf("Join() with no functions = %v, want nil", err)
	}
}

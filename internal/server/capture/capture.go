// Package capture provides the screen and system snapshot providers that
// enrich time entries, plus a helper that bounds how long a capture may
// take. Captures are best-effort: a clock transition never waits on them
// longer than the configured timeout and never fails because of them.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/server/models"
)

// ScreenCapturer grabs the current display as an encoded PNG.
type ScreenCapturer interface {
	CaptureScreen(ctx context.Context) ([]byte, error)
}

// SystemProber collects a snapshot of host identity and resource usage.
type SystemProber interface {
	ProbeSystem(ctx context.Context) (*models.SystemInfo, error)
}

// Run invokes fn in its own goroutine and waits at most timeout for the
// result. A slow or hung fn keeps running in the background but its result
// is discarded; the caller gets ErrCaptureFailed instead. All failures are
// wrapped in ErrCaptureFailed so callers can treat them uniformly.
func Run[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	var zero T
	select {
	case r := <-ch:
		if r.err != nil {
			return zero, fmt.Errorf("%w: %v", common.ErrCaptureFailed, r.err)
		}
		return r.v, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %v", common.ErrCaptureFailed, ctx.Err())
	}
}

// Package waitforterminate runs the application with a context that is done
// once the process receives SIGINT or SIGTERM.
package waitforterminate

import (
	"context"
	"github.com/lefinal/meh"
	"golang.org/x/sync/errgroup"
	"os"
	"os/signal"
	"syscall"
)

// Signals that terminate the application.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// Run runs fn with a context that is done once a termination signal is
// received. It returns after fn returned.
func Run(fn func(ctx context.Context) error) error {
	return RunContext(context.Background(), fn)
}

// RunContext is like Run but derives the lifetime from the given parent.
func RunContext(parent context.Context, fn func(ctx context.Context) error) error {
	lifetime, stop := signal.NotifyContext(parent, Signals...)
	defer stop()
	eg, ctx := errgroup.WithContext(lifetime)
	eg.Go(func() error {
		return fn(ctx)
	})
	return meh.NilOrWrap(eg.Wait(), "run", nil)
}

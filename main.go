package main

import (
	"context"
	"fmt"
	"github.com/lefinal/admission/app"
	"github.com/lefinal/admission/logging"
	"github.com/lefinal/admission/waitforterminate"
	"github.com/lefinal/meh"
	"github.com/lefinal/meh/mehlog"
	"os"
)

func main() {
	err := waitforterminate.Run(run)
	if err != nil {
		// Bad input is only logged at debug level.
		if meh.ErrorCode(err) == meh.ErrBadInput {
			_, _ = fmt.Fprintln(os.Stderr, err.Error())
		}
		mehlog.Log(logging.RootLogger(), err)
		_ = logging.RootLogger().Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	defer func() { _ = logging.RootLogger().Sync() }()
	return app.RunCLI(ctx, app.Options{}, os.Args)
}

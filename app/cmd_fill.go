package app

import (
	"context"
	"github.com/lefinal/admission/session"
	"github.com/lefinal/meh"
)

// commandFill runs an interactive session until the user quits.
func commandFill(ctx context.Context, options commandOptions) error {
	c, err := newController(options)
	if err != nil {
		return meh.Wrap(err, "new controller", nil)
	}
	err = session.New(options.Logger.Named("session"), options.Input, options.Out, c).Run(ctx)
	if err != nil {
		return meh.Wrap(err, "run session", nil)
	}
	return nil
}

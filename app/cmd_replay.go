package app

import (
	"context"
	"fmt"
	"github.com/lefinal/admission/controller"
	"github.com/lefinal/admission/form"
	"github.com/lefinal/admission/formfile"
	"github.com/lefinal/meh"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// commandReplay handles the steps of the event script with the given name one
// after another on a single form and prints the outcome of each submission and
// reset.
func commandReplay(ctx context.Context, options commandOptions, filename string) error {
	script, err := formfile.ScriptFromFile(filename)
	if err != nil {
		return meh.Wrap(err, "script from file", meh.Details{"filename": filename})
	}
	report := script.Validate(field.NewPath("steps"))
	if len(report.Errors) > 0 {
		return meh.NewBadInputErr(fmt.Sprintf("invalid script:\n%s", formfile.FormatReport(report)),
			meh.Details{"filename": filename})
	}
	c, err := newController(options)
	if err != nil {
		return meh.Wrap(err, "new controller", nil)
	}
	for i, step := range script {
		err = replayStep(ctx, options, c, step)
		if err != nil {
			return meh.Wrap(err, "replay step", meh.Details{"step": i, "step_type": step.Type()})
		}
	}
	stats := c.Stats()
	_, _ = fmt.Fprintf(options.Out, "Replayed %d step(s): %d accepted, %d rejected, %d reset(s).\n",
		len(script), stats.Accepted, stats.Rejected, stats.Resets)
	return nil
}

func replayStep(ctx context.Context, options commandOptions, c *controller.Controller, step formfile.Step) error {
	switch step := step.(type) {
	case formfile.StepChange:
		err := c.OnFieldChange(form.Field(step.Field), step.Value)
		if err != nil {
			return meh.Wrap(err, "field change", nil)
		}
	case formfile.StepSubmit:
		outcome, err := c.OnSubmit(ctx)
		if err != nil {
			return meh.Wrap(err, "submit", nil)
		}
		if !outcome.Accepted {
			_, _ = fmt.Fprintln(options.Out, "Registration not possible:")
			printErrors(options, outcome.Errors)
		}
	case formfile.StepReset:
		c.OnReset()
		_, _ = fmt.Fprintln(options.Out, "Form cleared.")
	default:
		return meh.NewInternalErr(fmt.Sprintf("unsupported step type: %T", step), nil)
	}
	return nil
}

// printErrors prints the field errors in display order.
func printErrors(options commandOptions, errs form.ErrorMap) {
	for _, f := range errs.Fields() {
		_, _ = fmt.Fprintf(options.Out, "  %s: %s\n", f.Label(), errs[f])
	}
}

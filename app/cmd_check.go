package app

import (
	"context"
	"fmt"
	"github.com/lefinal/admission/formfile"
	"github.com/lefinal/meh"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// commandCheck applies the values of the form file with the given name and
// submits the form. If the form is invalid, the field errors are printed and a
// bad-input error is returned.
func commandCheck(ctx context.Context, options commandOptions, filename string) error {
	logger := options.Logger
	formFile, err := formfile.FormFromFile(filename)
	if err != nil {
		return meh.Wrap(err, "form from file", meh.Details{"filename": filename})
	}
	report := formFile.Validate(field.NewPath("form"))
	for _, warning := range report.Warnings {
		logger.Warn(warning.Detail, zap.String("filename", filename))
	}
	if len(report.Errors) > 0 {
		return meh.NewBadInputErr(fmt.Sprintf("invalid form file:\n%s", formfile.FormatReport(report)),
			meh.Details{"filename": filename})
	}
	c, err := newController(options)
	if err != nil {
		return meh.Wrap(err, "new controller", nil)
	}
	for _, value := range formFile.Values() {
		err = c.OnFieldChange(value.Field, value.Value)
		if err != nil {
			return meh.Wrap(err, "field change", meh.Details{"field": value.Field})
		}
	}
	outcome, err := c.OnSubmit(ctx)
	if err != nil {
		return meh.Wrap(err, "submit", nil)
	}
	if outcome.Accepted {
		return nil
	}
	printErrors(options, outcome.Errors)
	return meh.NewBadInputErr(fmt.Sprintf("form invalid: %d field(s) need correction", len(outcome.Errors)),
		meh.Details{"filename": filename})
}

// Package controller provides Controller, the only owner of an admission form's
// State and ErrorMap. It accepts field changes, submissions and resets.
package controller

import (
	"context"
	"github.com/gofrs/uuid"
	"github.com/lefinal/admission/form"
	"github.com/lefinal/meh"
	"go.uber.org/zap"
	"time"
)

// Submission holds the values of an accepted submission.
type Submission struct {
	ID          uuid.UUID
	SubmittedAt time.Time
	Values      form.State
}

// Reporter is notified of each accepted Submission before the form is cleared.
type Reporter interface {
	ReportSubmission(ctx context.Context, submission Submission) error
}

// ReporterFunc allows using a function as Reporter.
type ReporterFunc func(ctx context.Context, submission Submission) error

// ReportSubmission calls the function.
func (fn ReporterFunc) ReportSubmission(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// SubmitOutcome is the result of Controller.OnSubmit.
type SubmitOutcome struct {
	// Accepted is true if validation passed and the Submission was reported.
	Accepted bool
	// Submission is only set if Accepted.
	Submission Submission
	// Errors is the ErrorMap of the validation pass. It is empty if Accepted.
	Errors form.ErrorMap
}

// Stats counts events handled by a Controller.
type Stats struct {
	Accepted int
	Rejected int
	Resets   int
}

// Option configures a Controller in New.
type Option func(c *Controller)

// WithClock sets the function used for timestamping submissions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithIDGenerator sets the function used for generating submission ids.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(c *Controller) {
		c.newID = newID
	}
}

// Controller mediates between user events and the form. It is not safe for
// concurrent use: events are expected to be handled one at a time.
type Controller struct {
	logger   *zap.Logger
	reporter Reporter
	now      func() time.Time
	newID    func() (uuid.UUID, error)

	state  form.State
	errors form.ErrorMap
	stats  Stats
}

// New creates a Controller with an empty form. If the reporter is nil,
// accepted submissions are only logged.
func New(logger *zap.Logger, reporter Reporter, options ...Option) *Controller {
	if reporter == nil {
		reporter = ReporterFunc(func(_ context.Context, _ Submission) error { return nil })
	}
	c := &Controller{
		logger:   logger,
		reporter: reporter,
		now:      time.Now,
		newID:    uuid.NewV4,
		errors:   form.ErrorMap{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// State returns a copy of the current form values.
func (c *Controller) State() form.State {
	return c.state
}

// Errors returns a copy of the ErrorMap of the last submission attempt. It is
// empty after a reset or an accepted submission.
func (c *Controller) Errors() form.ErrorMap {
	return c.errors.Clone()
}

// Stats returns the event counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// OnFieldChange replaces the value of the given field. The ErrorMap is left
// untouched until the next submission. If the field is unknown or the value
// is not selectable for an exclusive-choice field, a bad-input error is
// returned and the State is not changed.
func (c *Controller) OnFieldChange(field form.Field, value string) error {
	err := form.CheckInputValue(field, value)
	if err != nil {
		return meh.Wrap(err, "check input value", meh.Details{"field": field})
	}
	err = c.state.Set(field, value)
	if err != nil {
		return meh.Wrap(err, "set field", meh.Details{"field": field})
	}
	c.logger.Debug("field changed", zap.String("field", string(field)))
	return nil
}

// OnSubmit validates the current State. If any field fails, the ErrorMap is
// replaced and the State kept for correction. Otherwise, the Submission is
// reported and State as well as ErrorMap are cleared. An error is only
// returned if reporting fails. In that case, the State is kept.
func (c *Controller) OnSubmit(ctx context.Context) (SubmitOutcome, error) {
	errs := form.Validate(c.state)
	c.errors = errs
	if !errs.Valid() {
		c.stats.Rejected++
		c.logger.Debug("submission rejected",
			zap.Int("error_count", len(errs)),
			zap.Any("failed_fields", errs.Fields()))
		return SubmitOutcome{Errors: errs.Clone()}, nil
	}
	id, err := c.newID()
	if err != nil {
		return SubmitOutcome{}, meh.NewInternalErrFromErr(err, "new submission id", nil)
	}
	submission := Submission{
		ID:          id,
		SubmittedAt: c.now(),
		Values:      c.state,
	}
	err = c.reporter.ReportSubmission(ctx, submission)
	if err != nil {
		return SubmitOutcome{}, meh.Wrap(err, "report submission", meh.Details{"submission_id": id.String()})
	}
	c.clear()
	c.stats.Accepted++
	c.logger.Info("submission accepted", zap.String("submission_id", id.String()))
	return SubmitOutcome{
		Accepted:   true,
		Submission: submission,
		Errors:     form.ErrorMap{},
	}, nil
}

// OnReset clears State and ErrorMap without validation.
func (c *Controller) OnReset() {
	c.clear()
	c.stats.Resets++
	c.logger.Debug("form reset")
}

func (c *Controller) clear() {
	c.state = form.State{}
	c.errors = form.ErrorMap{}
}

// Package session provides an interactive terminal session for filling in the
// admission form. It renders the form with current values and errors and
// forwards user actions to a controller.Controller.
package session

import (
	"context"
	"fmt"
	"github.com/lefinal/admission/controller"
	"github.com/lefinal/admission/defaults"
	"github.com/lefinal/admission/form"
	"github.com/lefinal/admission/input"
	"github.com/lefinal/admission/templaterender"
	"github.com/lefinal/meh"
	"go.uber.org/zap"
	"io"
	"time"
)

// Labels of the actions besides editing fields.
const (
	ActionRegister = "Register"
	ActionCancel   = "Cancel"
	ActionQuit     = "Quit"
)

const isoDateLayout = "2006-01-02"

// Session runs the interactive form. Create one with New.
type Session struct {
	logger     *zap.Logger
	input      input.Input
	out        io.Writer
	controller *controller.Controller
}

// New creates a Session that reads from the given input, writes the form view
// to out and forwards actions to the controller.
func New(logger *zap.Logger, in input.Input, out io.Writer, c *controller.Controller) *Session {
	return &Session{
		logger:     logger,
		input:      in,
		out:        out,
		controller: c,
	}
}

// EditLabel returns the action label for editing the given field.
func EditLabel(f form.Field) string {
	return "Edit " + f.Label()
}

func actionLabels() []string {
	labels := make([]string, 0, len(form.Fields())+3)
	for _, f := range form.Fields() {
		labels = append(labels, EditLabel(f))
	}
	return append(labels, ActionRegister, ActionCancel, ActionQuit)
}

// NewFormData creates the data for rendering the form view.
func NewFormData(state form.State, errs form.ErrorMap) templaterender.FormData {
	rows := make([]templaterender.FormRow, 0, len(form.Fields()))
	for _, f := range form.Fields() {
		value := state.Get(f)
		if f == form.FieldCourse {
			value = state.Course.Label()
		}
		rows = append(rows, templaterender.FormRow{
			Entry: templaterender.Entry{
				Field: string(f),
				Label: f.Label(),
				Value: value,
			},
			Error: errs[f],
		})
	}
	return templaterender.FormData{
		Title: form.Title,
		Rows:  rows,
	}
}

func (s *Session) render() error {
	data := NewFormData(s.controller.State(), s.controller.Errors())
	err := templaterender.New(data).Render(s.out, defaults.FormTemplate)
	if err != nil {
		return meh.Wrap(err, "render form", nil)
	}
	return nil
}

// Run shows the form and handles actions until the user quits. Submission
// outcomes never end the session.
func (s *Session) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		stats := s.controller.Stats()
		s.logger.Info("session ended",
			zap.Duration("took", time.Since(start)),
			zap.Int("accepted", stats.Accepted),
			zap.Int("rejected", stats.Rejected),
			zap.Int("resets", stats.Resets))
	}()
	labels := actionLabels()
	cursor := 0
	for {
		err := s.render()
		if err != nil {
			return meh.Wrap(err, "render", nil)
		}
		selected, err := s.input.RequestSelection(ctx, "Select action", labels, cursor)
		if err != nil {
			return meh.Wrap(err, "request action", nil)
		}
		cursor = selected
		switch labels[selected] {
		case ActionRegister:
			err = s.submit(ctx)
			if err != nil {
				return meh.Wrap(err, "submit", nil)
			}
		case ActionCancel:
			s.controller.OnReset()
			_, _ = fmt.Fprintln(s.out, "Form cleared.")
		case ActionQuit:
			quit, err := s.confirmQuit(ctx)
			if err != nil {
				return meh.Wrap(err, "confirm quit", nil)
			}
			if quit {
				return nil
			}
		default:
			err = s.edit(ctx, form.Fields()[selected])
			if err != nil {
				return meh.Wrap(err, "edit field", meh.Details{"field": form.Fields()[selected]})
			}
		}
	}
}

// confirmQuit asks for confirmation if quitting would discard entered values.
func (s *Session) confirmQuit(ctx context.Context) (bool, error) {
	if s.controller.State().IsEmpty() {
		return true, nil
	}
	return s.input.RequestConfirm(ctx, "Discard entered values and quit", false)
}

func (s *Session) submit(ctx context.Context) error {
	outcome, err := s.controller.OnSubmit(ctx)
	if err != nil {
		return meh.Wrap(err, "submit", nil)
	}
	if outcome.Accepted {
		return nil
	}
	_, _ = fmt.Fprintf(s.out, "Registration not possible: %d field(s) need correction.\n", len(outcome.Errors))
	return nil
}

// edit requests a new value for the given field using the input matching the
// field's kind.
func (s *Session) edit(ctx context.Context, f form.Field) error {
	current := s.controller.State().Get(f)
	var value string
	switch f {
	case form.FieldGender, form.FieldCourse:
		options := form.Options(f)
		labels := make([]string, 0, len(options))
		cursor := 0
		for i, option := range options {
			label := option
			if f == form.FieldCourse {
				label = form.Course(option).Label()
			}
			labels = append(labels, label)
			if option == current {
				cursor = i
			}
		}
		selected, err := s.input.RequestSelection(ctx, f.Label(), labels, cursor)
		if err != nil {
			return meh.Wrap(err, "request selection", nil)
		}
		value = options[selected]
	case form.FieldDOB:
		var err error
		value, err = s.input.Request(ctx, f.Label()+" (YYYY-MM-DD)", current, checkISODate)
		if err != nil {
			return meh.Wrap(err, "request date", nil)
		}
	default:
		var err error
		value, err = s.input.Request(ctx, f.Label(), current, nil)
		if err != nil {
			return meh.Wrap(err, "request text", nil)
		}
	}
	err := s.controller.OnFieldChange(f, value)
	if err != nil {
		return meh.Wrap(err, "field change", meh.Details{"value": value})
	}
	return nil
}

// checkISODate accepts empty input or a date in ISO format like a date picker
// would produce.
func checkISODate(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return meh.NewBadInputErrFromErr(err, "date must be in format YYYY-MM-DD", nil)
	}
	return nil
}

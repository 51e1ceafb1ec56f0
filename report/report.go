// Package report provides controller.Reporter implementations for surfacing
// accepted submissions.
package report

import (
	"context"
	"github.com/lefinal/admission/controller"
	"github.com/lefinal/admission/form"
	"github.com/lefinal/admission/templaterender"
	"github.com/lefinal/meh"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"io"
	"time"
)

// NewSummaryData creates the data for rendering the summary of the given
// submission. Entries are in display order and include all fields.
func NewSummaryData(submission controller.Submission) templaterender.SummaryData {
	entries := make([]templaterender.Entry, 0, len(form.Fields()))
	for _, f := range form.Fields() {
		entries = append(entries, templaterender.Entry{
			Field: string(f),
			Label: f.Label(),
			Value: submission.Values.Get(f),
		})
	}
	return templaterender.SummaryData{
		Title:        form.Title,
		SubmissionID: submission.ID.String(),
		SubmittedAt:  submission.SubmittedAt,
		Entries:      entries,
	}
}

// Log reports submissions as log entries.
type Log struct {
	Logger *zap.Logger
}

// ReportSubmission logs all values of the submission.
func (r Log) ReportSubmission(_ context.Context, submission controller.Submission) error {
	fields := []zap.Field{
		zap.String("submission_id", submission.ID.String()),
		zap.Time("submitted_at", submission.SubmittedAt),
	}
	for _, f := range form.Fields() {
		fields = append(fields, zap.String(string(f), submission.Values.Get(f)))
	}
	r.Logger.Info("data stored successfully", fields...)
	return nil
}

// Summary reports submissions by rendering a text template to a writer.
type Summary struct {
	w        io.Writer
	template string
}

// NewSummary creates a Summary that writes to the given writer. The template is
// rendered with templaterender.SummaryData and is checked for syntax errors
// here.
func NewSummary(w io.Writer, summaryTemplate string) (*Summary, error) {
	_, err := templaterender.Parse(summaryTemplate)
	if err != nil {
		return nil, meh.Wrap(err, "parse summary template", nil)
	}
	return &Summary{
		w:        w,
		template: summaryTemplate,
	}, nil
}

// ReportSubmission renders the summary.
func (r *Summary) ReportSubmission(_ context.Context, submission controller.Submission) error {
	err := templaterender.New(NewSummaryData(submission)).Render(r.w, r.template)
	if err != nil {
		return meh.Wrap(err, "render summary", meh.Details{"submission_id": submission.ID.String()})
	}
	return nil
}

// Document is the YAML representation of an accepted submission.
type Document struct {
	ID          string     `yaml:"id"`
	SubmittedAt time.Time  `yaml:"submittedAt"`
	Values      form.State `yaml:"values"`
}

// YAML reports each submission as YAML document to a writer.
type YAML struct {
	W io.Writer
}

// ReportSubmission writes the submission as YAML document.
func (r YAML) ReportSubmission(_ context.Context, submission controller.Submission) error {
	doc := Document{
		ID:          submission.ID.String(),
		SubmittedAt: submission.SubmittedAt,
		Values:      submission.Values,
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return meh.NewInternalErrFromErr(err, "marshal yaml", meh.Details{"submission_id": doc.ID})
	}
	_, err = r.W.Write(append([]byte("---\n"), raw...))
	if err != nil {
		return meh.NewInternalErrFromErr(err, "write yaml", meh.Details{"submission_id": doc.ID})
	}
	return nil
}

// Multi reports to all reporters in order and stops at the first failing one.
type Multi []controller.Reporter

// ReportSubmission reports to all reporters.
func (reporters Multi) ReportSubmission(ctx context.Context, submission controller.Submission) error {
	for i, reporter := range reporters {
		err := reporter.ReportSubmission(ctx, submission)
		if err != nil {
			return meh.Wrap(err, "report submission", meh.Details{"reporter_index": i})
		}
	}
	return nil
}

// Package templaterender allows rendering the admission form and submission
// summaries from templates using Renderer.
package templaterender

import (
	"bytes"
	"fmt"
	"github.com/lefinal/meh"
	"io"
	"text/template"
	"time"
)

// Entry is a single labeled value.
type Entry struct {
	Field string
	Label string
	Value string
}

// SummaryData is the data for rendering the summary of an accepted
// submission.
type SummaryData struct {
	Title        string
	SubmissionID string
	SubmittedAt  time.Time
	Entries      []Entry
}

// FormRow is a field of the form with its current value and error message, if
// any.
type FormRow struct {
	Entry
	Error string
}

// FormData is the data for rendering the form view.
type FormData struct {
	Title string
	Rows  []FormRow
}

// Renderer allows rendering templates with fixed data. Create one with New and
// use methods like Renderer.Render.
type Renderer struct {
	data any
}

// New creates a new Renderer. The data is usually SummaryData or FormData.
func New(data any) *Renderer {
	return &Renderer{
		data: data,
	}
}

// Parse parses the given template text. Referencing missing keys fails on
// execution.
func Parse(str string) (*template.Template, error) {
	parsed, err := template.New("").Option("missingkey=error").Parse(str)
	if err != nil {
		return nil, meh.NewBadInputErrFromErr(err, "parse", meh.Details{"str": str})
	}
	return parsed, nil
}

// Render renders the given template to the writer.
func (renderer *Renderer) Render(w io.Writer, str string) error {
	parsed, err := Parse(str)
	if err != nil {
		return meh.Wrap(err, "parse template", nil)
	}
	// Render to a buffer first so that nothing is written on failure.
	var b bytes.Buffer
	err = parsed.Execute(&b, renderer.data)
	if err != nil {
		return meh.NewBadInputErrFromErr(err, "execute template", meh.Details{
			"template":      str,
			"template_data": fmt.Sprintf("%+v", renderer.data),
		})
	}
	_, err = w.Write(b.Bytes())
	if err != nil {
		return meh.NewInternalErrFromErr(err, "write rendered template", nil)
	}
	return nil
}

// Package defaults holds embedded defaults.
package defaults

import _ "embed"

var (
	// SummaryTemplate is the default template for the summary of an accepted
	// submission. It is rendered with templaterender.SummaryData.
	//
	//go:embed summary.tmpl
	SummaryTemplate string
	// FormTemplate is the template for the form view of the interactive
	// session. It is rendered with templaterender.FormData.
	//
	//go:embed form.tmpl
	FormTemplate string
)

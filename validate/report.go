package validate

// Issue describes what is wrong with the value at a field path. Issues are
// either errors, which make a value unacceptable, or warnings.
type Issue struct {
	Field    string
	BadValue any
	Detail   string
}

// NewIssue creates an Issue for the value at the given path.
func NewIssue(field *Path, badValue any, detail string) Issue {
	return Issue{
		Field:    field.String(),
		BadValue: badValue,
		Detail:   detail,
	}
}

// Report collects the issues of a validation run in the order they were found.
type Report struct {
	Warnings []Issue
	Errors   []Issue
}

func NewReport() *Report {
	return &Report{
		Warnings: make([]Issue, 0),
		Errors:   make([]Issue, 0),
	}
}

// AddWarning appends a warning.
func (r *Report) AddWarning(issue Issue) {
	r.Warnings = append(r.Warnings, issue)
}

// AddError appends an error. A Report with errors rejects the checked value.
func (r *Report) AddError(issue Issue) {
	r.Errors = append(r.Errors, issue)
}

// AddReport appends the issues of a nested validation, for example the one of
// a single script step.
func (r *Report) AddReport(nested *Report) {
	r.Warnings = append(r.Warnings, nested.Warnings...)
	r.Errors = append(r.Errors, nested.Errors...)
}

// ErrorDetailsByField maps each field path to the detail of its first error.
// This is what a form shows next to a field.
func (r *Report) ErrorDetailsByField() map[string]string {
	details := make(map[string]string, len(r.Errors))
	for _, issue := range r.Errors {
		if _, ok := details[issue.Field]; ok {
			continue
		}
		details[issue.Field] = issue.Detail
	}
	return details
}

// Reporter fills a Report while checking one field after another. Select the
// field with NextField and add issues for it with Warn and Error.
type Reporter struct {
	path   *Path
	value  any
	report *Report
}

// NewReporter creates a Reporter with an empty Report.
func NewReporter() *Reporter {
	return &Reporter{report: NewReport()}
}

// NextField selects the path and value that following issues refer to.
func (r *Reporter) NextField(path *Path, value any) {
	r.path = path
	r.value = value
}

func (r *Reporter) issue(detail string) Issue {
	return NewIssue(r.path, r.value, detail)
}

// Warn adds a warning for the selected field.
func (r *Reporter) Warn(detail string) {
	r.report.AddWarning(r.issue(detail))
}

// Error adds an error for the selected field.
func (r *Reporter) Error(detail string) {
	r.report.AddError(r.issue(detail))
}

// AddReport merges a nested Report. The selected field is not used.
func (r *Reporter) AddReport(nested *Report) {
	r.report.AddReport(nested)
}

// Report returns the Report filled so far.
func (r *Reporter) Report() *Report {
	return r.report
}

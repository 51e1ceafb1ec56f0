package formfile

import (
	"encoding/json"
	"fmt"
	"github.com/lefinal/admission/fileparse"
	"github.com/lefinal/admission/form"
	"github.com/lefinal/admission/validate"
	"github.com/lefinal/meh"
	"strings"
)

// StepType identifies the kind of Step.
type StepType string

const (
	StepTypeChange StepType = "change"
	StepTypeSubmit StepType = "submit"
	StepTypeReset  StepType = "reset"
)

// Step is a single event of a Script.
type Step interface {
	Type() StepType
	Validate(path *validate.Path) *validate.Report
}

func stepConstructor[T Step](t T) Step {
	return t
}

// StepChange changes the value of a field.
type StepChange struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Type returns StepTypeChange.
func (step StepChange) Type() StepType {
	return StepTypeChange
}

// Validate the step.
func (step StepChange) Validate(path *validate.Path) *validate.Report {
	reporter := validate.NewReporter()
	fieldNames := make([]string, 0, len(form.Fields()))
	for _, f := range form.Fields() {
		fieldNames = append(fieldNames, string(f))
	}
	validate.ForField(reporter, path.Child("field"), step.Field,
		validate.AssertNotEmpty[string]("field is required"),
		validate.AssertOneOf(fieldNames, "unknown field"))
	if options := form.Options(form.Field(step.Field)); options != nil {
		validate.ForField(reporter, path.Child("value"), step.Value,
			validate.AssertOneOf(options, "value not selectable"))
	}
	return reporter.Report()
}

// StepSubmit submits the form.
type StepSubmit struct{}

// Type returns StepTypeSubmit.
func (step StepSubmit) Type() StepType {
	return StepTypeSubmit
}

// Validate the step.
func (step StepSubmit) Validate(_ *validate.Path) *validate.Report {
	return validate.NewReport()
}

// StepReset resets the form.
type StepReset struct{}

// Type returns StepTypeReset.
func (step StepReset) Type() StepType {
	return StepTypeReset
}

// Validate the step.
func (step StepReset) Validate(_ *validate.Path) *validate.Report {
	return validate.NewReport()
}

// Script is a list of steps.
type Script []Step

// UnmarshalJSON parses each step based on its type.
func (script *Script) UnmarshalJSON(data []byte) error {
	steps, err := fileparse.ParseListBasedOnType[StepType, Step](data, map[StepType]fileparse.Unmarshaller[Step]{
		StepTypeChange: fileparse.UnmarshallerFn[StepChange](stepConstructor[StepChange]),
		StepTypeSubmit: fileparse.UnmarshallerFn[StepSubmit](stepConstructor[StepSubmit]),
		StepTypeReset:  fileparse.UnmarshallerFn[StepReset](stepConstructor[StepReset]),
	}, "type")
	if err != nil {
		return meh.Wrap(err, "parse list based on type", nil)
	}
	*script = steps
	return nil
}

// Validate all steps.
func (script Script) Validate(path *validate.Path) *validate.Report {
	reporter := validate.NewReporter()
	for i, step := range script {
		reporter.AddReport(step.Validate(path.Index(i)))
	}
	return reporter.Report()
}

// ParseScript parses a Script from JSON.
func ParseScript(rawScript json.RawMessage) (Script, error) {
	var script Script
	err := json.Unmarshal(rawScript, &script)
	if err != nil {
		return nil, meh.NewBadInputErrFromErr(err, "unmarshal script", nil)
	}
	return script, nil
}

// ScriptFromFile reads the event script with the given name. The format is
// determined by the file extension.
func ScriptFromFile(filename string) (Script, error) {
	rawScript, err := readJSON(filename)
	if err != nil {
		return nil, meh.Wrap(err, "read json", meh.Details{"filename": filename})
	}
	script, err := ParseScript(rawScript)
	if err != nil {
		return nil, meh.Wrap(err, "parse script", meh.Details{"filename": filename})
	}
	return script, nil
}

// FormatReport formats the errors of the given report as one line per issue.
func FormatReport(report *validate.Report) string {
	var b strings.Builder
	for _, issue := range report.Errors {
		_, _ = fmt.Fprintf(&b, "%s: %s\n", issue.Field, issue.Detail)
	}
	return b.String()
}

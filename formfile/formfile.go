// Package formfile reads form files and event scripts. Both may be written in
// YAML or JSON.
//
// A form file holds values for the form fields. Fields that are absent are not
// applied:
//
//	name: Jane Doe
//	mobile: 0123456789
//	course: Biology
//
// An event script is a list of steps that are handled in order:
//
//	- type: change
//	  field: name
//	  value: Jane Doe
//	- type: submit
//	- type: reset
package formfile

import (
	"bytes"
	"encoding/json"
	"github.com/lefinal/admission/fileparse"
	"github.com/lefinal/admission/form"
	"github.com/lefinal/admission/validate"
	"github.com/lefinal/meh"
	"github.com/lefinal/nulls"
	"os"
)

// Form holds the values of a form file.
type Form struct {
	Name    nulls.String `json:"name"`
	Address nulls.String `json:"address"`
	Mobile  nulls.String `json:"mobile"`
	Email   nulls.String `json:"email"`
	Gender  nulls.String `json:"gender"`
	DOB     nulls.String `json:"dob"`
	Course  nulls.String `json:"course"`
}

// FieldValue is a value for a field.
type FieldValue struct {
	Field form.Field
	Value string
}

func (f Form) byField() map[form.Field]nulls.String {
	return map[form.Field]nulls.String{
		form.FieldName:    f.Name,
		form.FieldAddress: f.Address,
		form.FieldMobile:  f.Mobile,
		form.FieldEmail:   f.Email,
		form.FieldGender:  f.Gender,
		form.FieldDOB:     f.DOB,
		form.FieldCourse:  f.Course,
	}
}

// Values returns the set values in display order.
func (f Form) Values() []FieldValue {
	byField := f.byField()
	values := make([]FieldValue, 0, len(byField))
	for _, field := range form.Fields() {
		if v := byField[field]; v.Valid {
			values = append(values, FieldValue{Field: field, Value: v.String})
		}
	}
	return values
}

// Validate checks that set values for exclusive-choice fields are selectable.
// A form without any values is reported as warning.
func (f Form) Validate(path *validate.Path) *validate.Report {
	reporter := validate.NewReporter()
	byField := f.byField()
	for _, field := range form.Fields() {
		options := form.Options(field)
		if options == nil {
			continue
		}
		validate.ForField(reporter, path.Child(string(field)), byField[field],
			validate.AssertIfOptionalStringSet(validate.AssertOneOf(options, "value not selectable")))
	}
	if len(f.Values()) == 0 {
		reporter.NextField(path, f)
		reporter.Warn("no field values set")
	}
	return reporter.Report()
}

// ParseForm parses a form from JSON. Numbers are taken as their literal text.
// Unknown keys are rejected.
func ParseForm(rawForm json.RawMessage) (Form, error) {
	rawForm, err := fileparse.JSONScalarMapToStrings(rawForm)
	if err != nil {
		return Form{}, meh.Wrap(err, "json scalar map to strings", nil)
	}
	var f Form
	decoder := json.NewDecoder(bytes.NewReader(rawForm))
	decoder.DisallowUnknownFields()
	err = decoder.Decode(&f)
	if err != nil {
		return Form{}, meh.NewBadInputErrFromErr(err, "unmarshal form", nil)
	}
	return f, nil
}

// FormFromFile reads the form file with the given name. The format is
// determined by the file extension. Unquoted YAML values keep their literal
// text, so a mobile number with leading zero needs no quotes.
func FormFromFile(filename string) (Form, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return Form{}, meh.NewBadInputErrFromErr(err, "read file", meh.Details{"filename": filename})
	}
	rawForm, err := fileparse.ScalarMapToJSON(filename, raw)
	if err != nil {
		return Form{}, meh.Wrap(err, "scalar map to json", meh.Details{"filename": filename})
	}
	f, err := ParseForm(rawForm)
	if err != nil {
		return Form{}, meh.Wrap(err, "parse form", meh.Details{"filename": filename})
	}
	return f, nil
}

func readJSON(filename string) (json.RawMessage, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, meh.NewBadInputErrFromErr(err, "read file", nil)
	}
	rawJSON, err := fileparse.ToJSON(filename, raw)
	if err != nil {
		return nil, meh.Wrap(err, "to json", nil)
	}
	return rawJSON, nil
}

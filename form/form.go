// Package form holds the admission form's state, its field metadata and the
// validation rules that map a State to an ErrorMap.
package form

import (
	"fmt"
	"github.com/lefinal/meh"
)

// Title is the title of the admission form.
const Title = "Higher Secondary Admission Form"

// Field identifies one of the form's input fields. Its value is the name used
// in files, scripts and on the command line.
type Field string

const (
	FieldName    Field = "name"
	FieldAddress Field = "address"
	FieldMobile  Field = "mobile"
	FieldEmail   Field = "email"
	FieldGender  Field = "gender"
	FieldDOB     Field = "dob"
	FieldCourse  Field = "course"
)

var fieldLabels = map[Field]string{
	FieldName:    "Name",
	FieldAddress: "Address",
	FieldMobile:  "Mobile",
	FieldEmail:   "Email",
	FieldGender:  "Gender",
	FieldDOB:     "Date of Birth",
	FieldCourse:  "Course",
}

// Fields returns all fields in display order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldAddress,
		FieldMobile,
		FieldEmail,
		FieldGender,
		FieldDOB,
		FieldCourse,
	}
}

// Label returns the human-readable label of the field.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Known reports whether the field is one of Fields.
func (f Field) Known() bool {
	_, ok := fieldLabels[f]
	return ok
}

// ParseField maps the given name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !f.Known() {
		return "", meh.NewBadInputErr(fmt.Sprintf("unknown field: %q", name), meh.Details{"known_fields": Fields()})
	}
	return f, nil
}

// State holds the current values of all form fields. The zero value is the
// empty form. DOB is the date of birth as ISO date, e.g., 2005-05-05.
type State struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Mobile  string `json:"mobile" yaml:"mobile"`
	Email   string `json:"email" yaml:"email"`
	Gender  Gender `json:"gender" yaml:"gender"`
	DOB     string `json:"dob" yaml:"dob"`
	Course  Course `json:"course" yaml:"course"`
}

// Get returns the raw value of the given field. Unknown fields yield an empty
// string.
func (s State) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldAddress:
		return s.Address
	case FieldMobile:
		return s.Mobile
	case FieldEmail:
		return s.Email
	case FieldGender:
		return string(s.Gender)
	case FieldDOB:
		return s.DOB
	case FieldCourse:
		return string(s.Course)
	}
	return ""
}

// Set replaces the value of the given field. It does not check enumerated
// values.
func (s *State) Set(f Field, value string) error {
	switch f {
	case FieldName:
		s.Name = value
	case FieldAddress:
		s.Address = value
	case FieldMobile:
		s.Mobile = value
	case FieldEmail:
		s.Email = value
	case FieldGender:
		s.Gender = Gender(value)
	case FieldDOB:
		s.DOB = value
	case FieldCourse:
		s.Course = Course(value)
	default:
		return meh.NewBadInputErr(fmt.Sprintf("unknown field: %q", f), nil)
	}
	return nil
}

// IsEmpty reports whether the state equals the empty form.
func (s State) IsEmpty() bool {
	return s == State{}
}

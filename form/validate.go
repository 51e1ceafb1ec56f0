package form

import (
	"github.com/lefinal/admission/validate"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"regexp"
)

// Error messages reported by Validate.
const (
	MessageNameRequired    = "Name is required"
	MessageAddressRequired = "Address is required"
	MessageMobileRequired  = "Mobile number is required"
	MessageMobileInvalid   = "Mobile number must be 10 digits"
	MessageEmailRequired   = "Email is required"
	MessageEmailInvalid    = "Email address is invalid"
	MessageGenderRequired  = "Gender is required"
	MessageDOBRequired     = "Date of birth is required"
	MessageCourseRequired  = "Course selection is required"
)

// nonWhitespace matches a run of characters that are not whitespace in the
// sense of validate.IsWhitespace.
const nonWhitespace = `[^` + validate.WhitespaceClass + `]+`

var (
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex  = regexp.MustCompile(nonWhitespace + `@` + nonWhitespace + `\.` + nonWhitespace)
)

// ErrorMap maps each field that currently fails validation to its error
// message. Fields that are valid are absent.
type ErrorMap map[Field]string

// Valid reports whether no field failed.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// Clone returns a copy of the map. The copy of a nil map is an empty map.
func (m ErrorMap) Clone() ErrorMap {
	c := make(ErrorMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Fields returns the failed fields in display order.
func (m ErrorMap) Fields() []Field {
	failed := make([]Field, 0, len(m))
	for _, f := range Fields() {
		if _, ok := m[f]; ok {
			failed = append(failed, f)
		}
	}
	return failed
}

// Validate checks every field of the given State independently and returns
// the ErrorMap. It never fails and has no side effects.
func Validate(state State) ErrorMap {
	reporter := validate.NewReporter()
	validate.ForField(reporter, pathOf(FieldName), state.Name,
		validate.AssertNotBlank(MessageNameRequired))
	validate.ForField(reporter, pathOf(FieldAddress), state.Address,
		validate.AssertNotBlank(MessageAddressRequired))
	validate.ForField(reporter, pathOf(FieldMobile), state.Mobile,
		validate.AssertPresent(MessageMobileRequired),
		validate.AssertMatches(mobileRegex, MessageMobileInvalid))
	validate.ForField(reporter, pathOf(FieldEmail), state.Email,
		validate.AssertPresent(MessageEmailRequired),
		validate.AssertMatches(emailRegex, MessageEmailInvalid))
	validate.ForField(reporter, pathOf(FieldGender), state.Gender,
		validate.AssertOneOf(Genders(), MessageGenderRequired))
	validate.ForField(reporter, pathOf(FieldDOB), state.DOB,
		validate.AssertPresent(MessageDOBRequired))
	validate.ForField(reporter, pathOf(FieldCourse), state.Course,
		validate.AssertOneOf(Courses(), MessageCourseRequired))

	details := reporter.Report().ErrorDetailsByField()
	errs := make(ErrorMap, len(details))
	for path, detail := range details {
		errs[Field(path)] = detail
	}
	return errs
}

func pathOf(f Field) *validate.Path {
	return field.NewPath(string(f))
}

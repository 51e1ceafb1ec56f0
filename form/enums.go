package form

import (
	"fmt"
	"github.com/lefinal/meh"
	"slices"
)

// Gender is the selected gender. Exactly one must be selected.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders returns all selectable genders in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Course is the course applied for.
type Course string

const (
	// CoursePlaceholder is the "Select Course" entry of the course list. It is
	// selectable but not a valid course.
	CoursePlaceholder     Course = ""
	CourseBiology         Course = "Biology"
	CourseComputerScience Course = "Computer Science"
	CourseCommerce        Course = "Commerce"
	CourseHumanities      Course = "Humanities"
)

const coursePlaceholderLabel = "Select Course"

// Courses returns all valid courses in display order. The placeholder is not
// included.
func Courses() []Course {
	return []Course{CourseBiology, CourseComputerScience, CourseCommerce, CourseHumanities}
}

// Label returns the text displayed for the course in a selection.
func (c Course) Label() string {
	if c == CoursePlaceholder {
		return coursePlaceholderLabel
	}
	return string(c)
}

// Options returns the values an input for the given field may produce in
// display order, or nil for free-text fields. For FieldCourse, the placeholder
// comes first.
func Options(f Field) []string {
	switch f {
	case FieldGender:
		options := make([]string, 0, len(Genders()))
		for _, g := range Genders() {
			options = append(options, string(g))
		}
		return options
	case FieldCourse:
		options := []string{string(CoursePlaceholder)}
		for _, c := range Courses() {
			options = append(options, string(c))
		}
		return options
	}
	return nil
}

// CheckInputValue checks whether an input for the field may produce the given
// value. Free-text fields accept anything. This is not validation: an input
// that passes this check may still fail Validate.
func CheckInputValue(f Field, value string) error {
	if !f.Known() {
		return meh.NewBadInputErr(fmt.Sprintf("unknown field: %q", f), nil)
	}
	options := Options(f)
	if options == nil {
		return nil
	}
	if !slices.Contains(options, value) {
		return meh.NewBadInputErr(fmt.Sprintf("value %q not selectable for %s", value, f),
			meh.Details{"field": f, "options": options})
	}
	return nil
}

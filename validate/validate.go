// Package validate is for field validation. It provides a Report that contains
// warnings and errors during validation as well as helper methods in the form of
// Assertion.
package validate

import (
	"github.com/lefinal/nulls"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Path represents the path from some root to a field.
type Path = field.Path

// Assertion returns a non-empty error message if the given value does not
// satisfy the requirements.
type Assertion[T any] func(val T) string

// AssertNotEmpty is an Assertion for the value not being equal to its empty
// value. It reports the given message.
func AssertNotEmpty[T comparable](message string) Assertion[T] {
	return func(val T) string {
		var empty T
		if val == empty {
			return message
		}
		return ""
	}
}

// AssertPresent is an Assertion for the string not being empty. Whitespace
// counts as present.
func AssertPresent(message string) Assertion[string] {
	return AssertNotEmpty[string](message)
}

// WhitespaceClass is a regular expression character class body matching the
// same characters as IsWhitespace. Use it as [^...] for non-whitespace.
const WhitespaceClass = `\s\x{0B}\p{Z}\x{FEFF}`

// IsWhitespace reports whether r is whitespace as understood by web browsers
// when trimming input: ASCII whitespace, vertical tab, Unicode separators and
// the byte order mark.
func IsWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// AssertNotBlank is an Assertion for the string not being empty after trimming
// leading and trailing whitespace according to IsWhitespace.
func AssertNotBlank(message string) Assertion[string] {
	return func(val string) string {
		if strings.TrimFunc(val, IsWhitespace) == "" {
			return message
		}
		return ""
	}
}

// AssertMatches is an Assertion for the string matching the given regular
// expression.
func AssertMatches(re *regexp.Regexp, message string) Assertion[string] {
	return func(val string) string {
		if !re.MatchString(val) {
			return message
		}
		return ""
	}
}

// AssertOneOf is an Assertion for the value being one of the allowed ones.
func AssertOneOf[T comparable](allowed []T, message string) Assertion[T] {
	return func(val T) string {
		if !slices.Contains(allowed, val) {
			return message
		}
		return ""
	}
}

// AssertIfOptionalStringSet checks the given Assertion-list if the value is set.
func AssertIfOptionalStringSet(assertions ...Assertion[string]) Assertion[nulls.String] {
	return func(val nulls.String) string {
		if len(assertions) == 0 {
			return "internal error: no assertions"
		}
		if !val.Valid {
			return ""
		}
		for _, assertion := range assertions {
			errMessage := assertion(val.String)
			if errMessage != "" {
				return errMessage
			}
		}
		return ""
	}
}

// ForField checks the given Assertion-list on the provided value and reports the
// first encountered error, if any, to the Reporter. Later assertions are only
// checked if all previous ones passed.
func ForField[T any](reporter *Reporter, path *Path, val T, assertion Assertion[T], moreAssertions ...Assertion[T]) {
	assertions := append([]Assertion[T]{assertion}, moreAssertions...)
	reporter.NextField(path, val)
	for _, assertion := range assertions {
		errMessage := assertion(val)
		if errMessage != "" {
			reporter.Error(errMessage)
			return
		}
	}
}

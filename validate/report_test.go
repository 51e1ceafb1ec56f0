package validate

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"testing"
)

func TestReporter(t *testing.T) {
	r := NewReporter()
	require.NotNil(t, r, "should have created reporter")

	fieldPath := field.NewPath("mobile")
	r.NextField(fieldPath, "123")
	require.Empty(t, r.Report().Errors, "should have logged no errors")
	r.Error("my error message")
	require.NotEmpty(t, r.Report().Errors, "should have logged error")
	require.Contains(t, r.Report().Errors[0].Detail, "my error message")
	require.Equal(t, r.Report().Errors[0].Field, fieldPath.String())
	require.Equal(t, "123", r.Report().Errors[0].BadValue)

	r.NextField(field.NewPath("email"), "abc")
	require.Len(t, r.Report().Errors, 1, "should not have logged new error")
	r.Error("invalid")
	r.Warn("suspicious")
	require.Len(t, r.Report().Errors, 2, "should have logged all errors")
	require.Len(t, r.Report().Warnings, 1, "should have logged warning")
}

func TestReporter_AddReport(t *testing.T) {
	r := NewReporter()

	r.NextField(field.NewPath("name"), "")
	r.Error("required")
	r.NextField(field.NewPath("dob"), "")
	r.Error("required")

	otherReporter := NewReporter()
	otherReporter.NextField(field.NewPath("course"), "")
	otherReporter.Error("required")
	otherReporter.Warn("placeholder")

	r.AddReport(otherReporter.Report())

	assert.Len(t, r.Report().Errors, 3)
	assert.Len(t, r.Report().Warnings, 1)
}

func TestReport_ErrorDetailsByField(t *testing.T) {
	r := NewReporter()
	r.NextField(field.NewPath("mobile"), "")
	r.Error("first")
	r.Error("second")
	r.NextField(field.NewPath("email"), "x")
	r.Error("invalid")

	details := r.Report().ErrorDetailsByField()

	assert.Equal(t, map[string]string{
		"mobile": "first",
		"email":  "invalid",
	}, details)
}

func TestReport_ErrorDetailsByFieldEmpty(t *testing.T) {
	assert.Empty(t, NewReport().ErrorDetailsByField())
}

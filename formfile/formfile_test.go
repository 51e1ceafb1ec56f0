package formfile

import (
	"github.com/lefinal/admission/form"
	"github.com/lefinal/meh"
	"github.com/lefinal/nulls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"os"
	"path/filepath"
	"testing"
)

func TestFormFromFileYAML(t *testing.T) {
	f, err := FormFromFile("testdata/form.yaml")
	require.NoError(t, err, "should not fail")
	assert.Equal(t, Form{
		Name:    nulls.NewString("Jane Doe"),
		Address: nulls.NewString("1 Main St"),
		Mobile:  nulls.NewString("1234567890"),
		Email:   nulls.NewString("jane@example.com"),
		Gender:  nulls.NewString("Female"),
		DOB:     nulls.NewString("2005-05-05"),
		Course:  nulls.NewString("Computer Science"),
	}, f)
	assert.Len(t, f.Values(), 7)
}

func TestFormFromFileJSONPartial(t *testing.T) {
	f, err := FormFromFile("testdata/partial.json")
	require.NoError(t, err, "should not fail")
	assert.Equal(t, []FieldValue{
		{Field: form.FieldName, Value: "Jane Doe"},
		{Field: form.FieldMobile, Value: "12345"},
	}, f.Values(), "should only return set values in display order")
}

func TestFormFromFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, content string) string {
		filename := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(filename, []byte(content), 0600))
		return filename
	}
	tests := []struct {
		name     string
		filename string
	}{
		{name: "not found", filename: filepath.Join(dir, "missing.yaml")},
		{name: "unsupported extension", filename: write("form.txt", "name: Jane")},
		{name: "unknown key", filename: write("unknown.yaml", "nickname: Jane")},
		{name: "list value", filename: write("list-value.yaml", "name: [Jane]")},
		{name: "map value", filename: write("map-value.yaml", "name: {first: Jane}")},
		{name: "bool value json", filename: write("bool.json", `{"mobile": true}`)},
		{name: "invalid yaml", filename: write("invalid.yaml", "name: [Jane")},
		{name: "list", filename: write("list.json", `["Jane"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormFromFile(tt.filename)
			require.Error(t, err, "should fail")
			assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))
		})
	}
}

func TestFormFromFileUnquotedValues(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		expect  []FieldValue
	}{
		{
			name:    "yaml mobile",
			file:    "mobile.yaml",
			content: "mobile: 1234567890",
			expect:  []FieldValue{{Field: form.FieldMobile, Value: "1234567890"}},
		},
		{
			name:    "yaml mobile leading zero",
			file:    "leading-zero.yaml",
			content: "mobile: 0123456789",
			expect:  []FieldValue{{Field: form.FieldMobile, Value: "0123456789"}},
		},
		{
			name:    "yaml mobile octal digits",
			file:    "octal.yaml",
			content: "mobile: 0123456",
			expect:  []FieldValue{{Field: form.FieldMobile, Value: "0123456"}},
		},
		{
			name:    "yaml date and null",
			file:    "date.yaml",
			content: "dob: 2005-05-05\nemail: ~\nname:\n",
			expect:  []FieldValue{{Field: form.FieldDOB, Value: "2005-05-05"}},
		},
		{
			name:    "yaml quoted empty",
			file:    "quoted-empty.yaml",
			content: "name: ''",
			expect:  []FieldValue{{Field: form.FieldName, Value: ""}},
		},
		{
			name:    "json number",
			file:    "mobile.json",
			content: `{"mobile": 1234567890}`,
			expect:  []FieldValue{{Field: form.FieldMobile, Value: "1234567890"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(filename, []byte(tt.content), 0600))
			f, err := FormFromFile(filename)
			require.NoError(t, err, "should not fail")
			assert.Equal(t, tt.expect, f.Values())
		})
	}
}

func TestFormFromFileEmptyYAML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(filename, nil, 0600))
	f, err := FormFromFile(filename)
	require.NoError(t, err)
	assert.Empty(t, f.Values())
}

func TestParseFormNumber(t *testing.T) {
	f, err := ParseForm([]byte(`{"mobile": 1234567890, "name": "Jane"}`))
	require.NoError(t, err)
	assert.Equal(t, nulls.NewString("1234567890"), f.Mobile)
}

func TestParseFormEmptyValue(t *testing.T) {
	f, err := ParseForm([]byte(`{"name": "", "email": null}`))
	require.NoError(t, err)
	assert.Equal(t, []FieldValue{{Field: form.FieldName, Value: ""}}, f.Values(),
		"empty string should be applied but null not")
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		valid    bool
		warnings bool
	}{
		{
			name:  "ok",
			form:  Form{Name: nulls.NewString("Jane"), Gender: nulls.NewString("Male"), Course: nulls.NewString("Biology")},
			valid: true,
		},
		{
			name:  "placeholder course",
			form:  Form{Course: nulls.NewString("")},
			valid: true,
		},
		{
			name:     "empty",
			form:     Form{},
			valid:    true,
			warnings: true,
		},
		{
			name:  "invalid gender",
			form:  Form{Gender: nulls.NewString("male")},
			valid: false,
		},
		{
			name:  "empty gender",
			form:  Form{Gender: nulls.NewString("")},
			valid: false,
		},
		{
			name:  "invalid course",
			form:  Form{Course: nulls.NewString("Physics")},
			valid: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.form.Validate(field.NewPath("form"))
			if tt.valid {
				assert.Empty(t, report.Errors, "should not report errors")
			} else {
				assert.NotEmpty(t, report.Errors, "should report errors")
			}
			if tt.warnings {
				assert.NotEmpty(t, report.Warnings, "should report warnings")
			} else {
				assert.Empty(t, report.Warnings, "should not report warnings")
			}
		})
	}
}

package fileparse

import (
	"github.com/lefinal/meh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type testKind string

const (
	testKindGreet testKind = "greet"
	testKindCount testKind = "count"
)

type testEntry interface {
	kind() testKind
}

type testGreet struct {
	Name string `json:"name"`
}

func (testGreet) kind() testKind { return testKindGreet }

type testCount struct {
	N int `json:"n"`
}

func (testCount) kind() testKind { return testKindCount }

func asTestEntry[T testEntry](t T) testEntry {
	return t
}

func testMapping() map[testKind]Unmarshaller[testEntry] {
	return map[testKind]Unmarshaller[testEntry]{
		testKindGreet: UnmarshallerFn[testGreet](asTestEntry[testGreet]),
		testKindCount: UnmarshallerFn[testCount](asTestEntry[testCount]),
	}
}

func TestParseBasedOnType(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		expectErr bool
		expect    testEntry
	}{
		{
			name:   "greet",
			data:   `{"type": "greet", "name": "Jane"}`,
			expect: testGreet{Name: "Jane"},
		},
		{
			name:   "count",
			data:   `{"type": "count", "n": 3}`,
			expect: testCount{N: 3},
		},
		{
			name:      "missing type",
			data:      `{"name": "Jane"}`,
			expectErr: true,
		},
		{
			name:      "empty type",
			data:      `{"type": ""}`,
			expectErr: true,
		},
		{
			name:      "type not a string",
			data:      `{"type": 42}`,
			expectErr: true,
		},
		{
			name:      "unsupported type",
			data:      `{"type": "dance"}`,
			expectErr: true,
		},
		{
			name:      "invalid payload",
			data:      `{"type": "count", "n": "three"}`,
			expectErr: true,
		},
		{
			name:      "no object",
			data:      `[]`,
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBasedOnType([]byte(tt.data), testMapping(), "type")
			if tt.expectErr {
				require.Error(t, err, "should fail")
				assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))
				return
			}
			require.NoError(t, err, "should not fail")
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestParseListBasedOnType(t *testing.T) {
	got, err := ParseListBasedOnType([]byte(`[
		{"type": "count", "n": 1},
		{"type": "greet", "name": "Jane"},
		{"type": "count", "n": 2}
	]`), testMapping(), "type")
	require.NoError(t, err)
	assert.Equal(t, []testEntry{testCount{N: 1}, testGreet{Name: "Jane"}, testCount{N: 2}}, got, "should keep order")

	got, err = ParseListBasedOnType([]byte(`[]`), testMapping(), "type")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseListBasedOnType([]byte(`[{"type": "count"}, {"type": "nope"}]`), testMapping(), "type")
	assert.Error(t, err, "should fail for unsupported entry")

	_, err = ParseListBasedOnType([]byte(`{"type": "count"}`), testMapping(), "type")
	assert.Error(t, err, "should fail for no list")
}

func TestToJSON(t *testing.T) {
	rawJSON, err := ToJSON("form.yaml", []byte("name: Jane\nmobile: \"0123456789\"\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Jane", "mobile": "0123456789"}`, string(rawJSON))

	rawJSON, err = ToJSON("form.YML", []byte("- a\n- b\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a", "b"]`, string(rawJSON))

	rawJSON, err = ToJSON("form.json", []byte(`{"name": "Jane"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Jane"}`, string(rawJSON))

	_, err = ToJSON("form.yaml", []byte("name: [unclosed\n"))
	assert.Error(t, err, "should fail for invalid yaml")

	_, err = ToJSON("form.txt", []byte("name: Jane"))
	require.Error(t, err, "should fail for unsupported extension")
	assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))
}

func TestScalarMapToJSON(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		data      string
		expectErr bool
		expect    string
	}{
		{
			name:     "yaml literal text",
			filename: "form.yaml",
			data:     "mobile: 0123456789\nname: Jane\ndob: 2005-05-05\ncount: 1.50\n",
			expect:   `{"mobile": "0123456789", "name": "Jane", "dob": "2005-05-05", "count": "1.50"}`,
		},
		{
			name:     "yaml null",
			filename: "form.yml",
			data:     "name: ~\nemail:\naddress: null\n",
			expect:   `{"name": null, "email": null, "address": null}`,
		},
		{
			name:     "yaml quoted null",
			filename: "form.yaml",
			data:     "name: \"null\"\n",
			expect:   `{"name": "null"}`,
		},
		{
			name:     "yaml alias",
			filename: "form.yaml",
			data:     "name: &n Jane\naddress: *n\n",
			expect:   `{"name": "Jane", "address": "Jane"}`,
		},
		{
			name:     "yaml empty",
			filename: "form.yaml",
			data:     "",
			expect:   `{}`,
		},
		{
			name:      "yaml list",
			filename:  "form.yaml",
			data:      "- Jane\n",
			expectErr: true,
		},
		{
			name:      "yaml nested",
			filename:  "form.yaml",
			data:      "name:\n  first: Jane\n",
			expectErr: true,
		},
		{
			name:      "yaml invalid",
			filename:  "form.yaml",
			data:      "name: [unclosed\n",
			expectErr: true,
		},
		{
			name:     "json numbers",
			filename: "form.json",
			data:     `{"mobile": 1234567890, "count": -1.5e3, "name": "Jane", "email": null}`,
			expect:   `{"mobile": "1234567890", "count": "-1.5e3", "name": "Jane", "email": null}`,
		},
		{
			name:      "json bool",
			filename:  "form.json",
			data:      `{"mobile": true}`,
			expectErr: true,
		},
		{
			name:      "json list",
			filename:  "form.json",
			data:      `["Jane"]`,
			expectErr: true,
		},
		{
			name:      "unsupported extension",
			filename:  "form.txt",
			data:      "name: Jane",
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScalarMapToJSON(tt.filename, []byte(tt.data))
			if tt.expectErr {
				require.Error(t, err, "should fail")
				assert.Equal(t, meh.ErrBadInput, meh.ErrorCode(err))
				return
			}
			require.NoError(t, err, "should not fail")
			assert.JSONEq(t, tt.expect, string(got))
		})
	}
}

// Package fileparse is used for parsing form files and event scripts. It
// supports helpers like ParseBasedOnType and converts YAML to JSON so that all
// files are decoded the same way.
package fileparse

import (
	"encoding/json"
	"fmt"
	"github.com/lefinal/meh"
	"gopkg.in/yaml.v3"
	"path/filepath"
	k8syaml "sigs.k8s.io/yaml"
	"strings"
)

// UnmarshallerFn is a higher-order function that creates a JSON Unmarshaller
// function for a specific type.
func UnmarshallerFn[T any, S any](constructorFn func(t T) S) Unmarshaller[S] {
	return func(data []byte) (S, error) {
		var t T
		err := json.Unmarshal(data, &t)
		return constructorFn(t), err
	}
}

// Unmarshaller is a generic type alias for a function that unmarshals JSON data
// into a value of type S.
type Unmarshaller[S any] func(data []byte) (S, error)

// ParseListBasedOnType parses a JSON list where each entry is parsed based on
// the type field with the given name. Entries keep their order.
func ParseListBasedOnType[T ~string, S any](data []byte, typeMapping map[T]Unmarshaller[S], typeFieldName string) ([]S, error) {
	var rawJSONList []json.RawMessage
	err := json.Unmarshal(data, &rawJSONList)
	if err != nil {
		return nil, meh.NewBadInputErrFromErr(err, "unmarshal raw json list", nil)
	}
	list := make([]S, 0, len(rawJSONList))
	for i, rawJSON := range rawJSONList {
		parsed, err := ParseBasedOnType(rawJSON, typeMapping, typeFieldName)
		if err != nil {
			return nil, meh.Wrap(err, fmt.Sprintf("parse entry %d based on type", i), nil)
		}
		list = append(list, parsed)
	}
	return list, nil
}

// ParseBasedOnType is a function that parses JSON data based on the type field.
// It accepts the JSON data, a mapping of type name to Unmarshaller, and the type
// field name. It returns the parsed object of the corresponding type and an
// error if any.
func ParseBasedOnType[T ~string, S any](data []byte, typeMapping map[T]Unmarshaller[S], typeFieldName string) (S, error) {
	var s S
	var raw map[string]any
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return s, meh.NewBadInputErrFromErr(err, "unmarshal type base", meh.Details{"tried_to_unmarshal_type_base": string(data)})
	}
	typeNameRaw := raw[typeFieldName]
	if typeNameRaw == nil || typeNameRaw == "" {
		return s, meh.NewBadInputErr("missing type name", meh.Details{"type_field_name": typeFieldName})
	}
	typeNameStr, ok := typeNameRaw.(string)
	if !ok {
		return s, meh.NewBadInputErr(fmt.Sprintf("type name has unexpected data type: %T", typeNameRaw),
			meh.Details{"type_name_was": typeNameRaw})
	}
	typeName := T(typeNameStr)
	unmarshal, ok := typeMapping[typeName]
	if !ok {
		return s, meh.NewBadInputErr(fmt.Sprintf("unsupported type: %v", typeName), nil)
	}
	parsed, err := unmarshal(data)
	if err != nil {
		return s, meh.NewBadInputErrFromErr(err, "parse actual type", nil)
	}
	return parsed, nil
}

func isYAML(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func isJSON(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".json"
}

// ToJSON returns the given file contents as JSON. The format is chosen by the
// extension of the filename: YAML files are converted and JSON files are
// returned as they are.
func ToJSON(filename string, raw []byte) (json.RawMessage, error) {
	switch {
	case isYAML(filename):
		rawJSON, err := k8syaml.YAMLToJSON(raw)
		if err != nil {
			return nil, meh.NewBadInputErrFromErr(err, "yaml to json", nil)
		}
		return rawJSON, nil
	case isJSON(filename):
		return raw, nil
	default:
		return nil, meh.NewBadInputErr("unsupported file extension", meh.Details{"filename": filename})
	}
}

// ScalarMapToJSON returns the given file contents, which must hold a map of
// scalar values, as JSON object of strings. Scalars keep their literal text, so
// an unquoted 0123456789 stays "0123456789". Null values stay null. The format
// is chosen by the extension of the filename like with ToJSON.
func ScalarMapToJSON(filename string, raw []byte) (json.RawMessage, error) {
	switch {
	case isYAML(filename):
		rawJSON, err := YAMLScalarMapToJSON(raw)
		if err != nil {
			return nil, meh.Wrap(err, "yaml scalar map to json", nil)
		}
		return rawJSON, nil
	case isJSON(filename):
		rawJSON, err := JSONScalarMapToStrings(raw)
		if err != nil {
			return nil, meh.Wrap(err, "json scalar map to strings", nil)
		}
		return rawJSON, nil
	default:
		return nil, meh.NewBadInputErr("unsupported file extension", meh.Details{"filename": filename})
	}
}

// YAMLScalarMapToJSON converts a YAML map of scalars to a JSON object of
// strings with the literal text of each scalar. An empty document results in
// an empty object.
func YAMLScalarMapToJSON(raw []byte) (json.RawMessage, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(raw, &doc)
	if err != nil {
		return nil, meh.NewBadInputErrFromErr(err, "unmarshal yaml", nil)
	}
	values := make(map[string]*string)
	if doc.Kind != 0 {
		if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
			return nil, meh.NewBadInputErr("expected a map", nil)
		}
		mapping := doc.Content[0]
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			key, value := mapping.Content[i], mapping.Content[i+1]
			if value.Kind == yaml.AliasNode && value.Alias != nil {
				value = value.Alias
			}
			if value.Kind != yaml.ScalarNode {
				return nil, meh.NewBadInputErr(fmt.Sprintf("value of %q must be a scalar", key.Value),
					meh.Details{"line": value.Line})
			}
			if value.ShortTag() == "!!null" {
				values[key.Value] = nil
				continue
			}
			literal := value.Value
			values[key.Value] = &literal
		}
	}
	rawJSON, err := json.Marshal(values)
	if err != nil {
		return nil, meh.NewInternalErrFromErr(err, "marshal json", nil)
	}
	return rawJSON, nil
}

// JSONScalarMapToStrings replaces number values of the given JSON object with
// strings holding the number's literal text. Strings and nulls are kept. Other
// values are rejected.
func JSONScalarMapToStrings(raw []byte) (json.RawMessage, error) {
	var values map[string]json.RawMessage
	err := json.Unmarshal(raw, &values)
	if err != nil {
		return nil, meh.NewBadInputErrFromErr(err, "unmarshal json object", nil)
	}
	for key, value := range values {
		switch {
		case len(value) == 0, value[0] == '"', string(value) == "null":
		case value[0] == '-' || (value[0] >= '0' && value[0] <= '9'):
			quoted, err := json.Marshal(string(value))
			if err != nil {
				return nil, meh.NewInternalErrFromErr(err, "marshal number literal", meh.Details{"key": key})
			}
			values[key] = quoted
		default:
			return nil, meh.NewBadInputErr(fmt.Sprintf("value of %q must be a string or number", key),
				meh.Details{"value": string(value)})
		}
	}
	rawJSON, err := json.Marshal(values)
	if err != nil {
		return nil, meh.NewInternalErrFromErr(err, "marshal json", nil)
	}
	return rawJSON, nil
}

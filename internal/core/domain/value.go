package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// ValueKind tags the concrete shape a Value holds.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a small tagged-variant wrapper over a parsed JSON document,
// giving callers typed accessors instead of repeated any-typed assertions
// every time a solution document is walked.
type Value struct {
	kind ValueKind
	raw  any
}

// NewValue wraps a decoded JSON value (as produced by encoding/json into an
// any) into a Value, tagging its kind.
func NewValue(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{kind: KindNull}
	case bool:
		return Value{kind: KindBool, raw: v}
	case float64:
		return Value{kind: KindNumber, raw: v}
	case string:
		return Value{kind: KindString, raw: v}
	case []any:
		return Value{kind: KindArray, raw: v}
	case map[string]any:
		return Value{kind: KindObject, raw: v}
	default:
		return Value{kind: KindNull}
	}
}

// ParseValue decodes a JSON document into a Value tree.
func ParseValue(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, zerr.Wrap(err, "parse json document")
	}
	return NewValue(raw), nil
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsObject() bool  { return v.kind == KindObject }
func (v Value) IsArray() bool   { return v.kind == KindArray }

// AsString returns the string value, or ok=false if this Value isn't a string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// AsBool returns the bool value, or ok=false if this Value isn't a bool.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// AsInt64 truncates a numeric Value to an int64.
func (v Value) AsInt64() (int64, bool) {
	f, ok := v.raw.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// AsArray returns the element Values of an array, or ok=false otherwise.
func (v Value) AsArray() ([]Value, bool) {
	raw, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(raw))
	for i, e := range raw {
		out[i] = NewValue(e)
	}
	return out, true
}

// AsObject returns the object's fields as Values, or ok=false otherwise.
func (v Value) AsObject() (map[string]Value, bool) {
	raw, ok := v.raw.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]Value, len(raw))
	for k, e := range raw {
		out[k] = NewValue(e)
	}
	return out, true
}

// Field looks up a key on an object Value. The second return is false if v
// isn't an object or the key is absent.
func (v Value) Field(key string) (Value, bool) {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}, false
	}
	raw, ok := obj[key]
	if !ok {
		return Value{}, false
	}
	return NewValue(raw), true
}

// StringField fetches a required string field, wrapping ErrConfigValueNotSet
// with the field's name when absent or of the wrong type.
func (v Value) StringField(path string) (string, error) {
	f, ok := v.Field(path)
	if !ok {
		return "", zerr.With(zerr.Wrap(ErrConfigValueNotSet, "missing field"), "field", path)
	}
	s, ok := f.AsString()
	if !ok {
		return "", zerr.With(zerr.Wrap(ErrConfigValueNotSet, "field is not a string"), "field", path)
	}
	return s, nil
}

// OptionalStringField fetches an optional string field, returning "" when absent.
func (v Value) OptionalStringField(path string) string {
	f, ok := v.Field(path)
	if !ok {
		return ""
	}
	s, _ := f.AsString()
	return s
}

// StringListField reads a field that may be either a single string or an
// array of strings, matching the original solution document's tolerance for
// "paths.scan" being written either way.
func (v Value) StringListField(path string) []string {
	f, ok := v.Field(path)
	if !ok {
		return nil
	}
	if s, ok := f.AsString(); ok {
		return []string{s}
	}
	if arr, ok := f.AsArray(); ok {
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			if s, ok := e.AsString(); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

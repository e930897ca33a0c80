package core

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

// Value kinds.
const (
	KindString ValueKind = iota
	KindInt
	// KindNaN marks an integer column whose raw text could not be parsed.
	KindNaN
	KindBool
)

// Value is a coerced field value.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Str  string
}

// IntValue returns a parsed integer value.
func IntValue(n int64) Value { return Value{Kind: KindInt, Int: n} }

// NaNValue returns the unparseable-integer sentinel.
func NaNValue() Value { return Value{Kind: KindNaN} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// StringValue returns a text value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IsNaN reports whether v is the unparseable-integer sentinel.
func (v Value) IsNaN() bool { return v.Kind == KindNaN }

// Interface returns v as a plain Go value. NaN becomes nil.
func (v Value) Interface() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindNaN:
		return nil
	case KindBool:
		return v.Bool
	default:
		return v.Str
	}
}

// String formats v for display.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindNaN:
		return "NaN"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// MarshalJSON implements json.Marshaler. NaN is encoded as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// Field is a single named value within a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is a coerced row. Fields keep the model's column order.
type Record []Field

// Get returns the value of the named field.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON encodes the record as an object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping node in field order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r {
		var val yaml.Node
		if err := val.Encode(f.Value.Interface()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			&val,
		)
	}
	return node, nil
}

package models

import "strings"

// ValueKind is the scalar type of a MetricValue.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindBool
	KindString
)

// MetricValue is one scalar produced by flattening an attribute.
type MetricValue struct {
	Kind ValueKind

	// Raw is the textual form: the number as received, "true"/"false"
	// for booleans and the unquoted text for strings
	Raw string
}

func Number(raw string) MetricValue { return MetricValue{Kind: KindNumber, Raw: raw} }

func String(s string) MetricValue { return MetricValue{Kind: KindString, Raw: s} }

func Null() MetricValue { return MetricValue{Kind: KindNull} }

func Bool(b bool) MetricValue {
	if b {
		return MetricValue{Kind: KindBool, Raw: "true"}
	}
	return MetricValue{Kind: KindBool, Raw: "false"}
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Format renders the value for an output line. Strings are always quoted.
func (v MetricValue) Format() string {
	switch v.Kind {
	case KindNumber, KindBool:
		return v.Raw
	case KindString:
		return `"` + stringEscaper.Replace(v.Raw) + `"`
	default:
		return `""`
	}
}

// AttributeKind is the shape of a raw attribute read.
type AttributeKind int

const (
	AttributeScalar AttributeKind = iota
	AttributeComposite
	AttributeTabular
)

// Field is a named member of a composite value.
type Field struct {
	Name  string
	Value AttributeValue
}

// AttributeValue is the raw result of an attribute read before flattening.
type AttributeValue struct {
	Kind AttributeKind

	// Scalar is set for AttributeScalar
	Scalar MetricValue

	// Fields is set for AttributeComposite, in declaration order
	Fields []Field

	// Rows is set for AttributeTabular, in row order
	Rows []AttributeValue
}

func ScalarValue(v MetricValue) AttributeValue {
	return AttributeValue{Kind: AttributeScalar, Scalar: v}
}

func CompositeValue(fields ...Field) AttributeValue {
	return AttributeValue{Kind: AttributeComposite, Fields: fields}
}

func TabularValue(rows ...AttributeValue) AttributeValue {
	return AttributeValue{Kind: AttributeTabular, Rows: rows}
}

// Lookup returns the composite field with the given name.
func (v AttributeValue) Lookup(name string) (AttributeValue, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return AttributeValue{}, false
}

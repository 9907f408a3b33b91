package receiver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Kind is the type Coerce chose for an annotation value.
type Kind int

const (
	KindString Kind = iota
	KindInt64
	KindFloat64
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// AnnotationValue is a typed annotation value. The zero value is the empty
// string.
type AnnotationValue struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

func Int64Value(v int64) AnnotationValue     { return AnnotationValue{kind: KindInt64, i: v} }
func Float64Value(v float64) AnnotationValue { return AnnotationValue{kind: KindFloat64, f: v} }
func BoolValue(v bool) AnnotationValue       { return AnnotationValue{kind: KindBool, b: v} }
func StringValue(v string) AnnotationValue   { return AnnotationValue{kind: KindString, s: v} }

// Kind returns the value's type.
func (v AnnotationValue) Kind() Kind { return v.kind }

// Int64 returns the value when Kind is KindInt64, otherwise 0.
func (v AnnotationValue) Int64() int64 { return v.i }

// Float64 returns the value when Kind is KindFloat64, otherwise 0.
func (v AnnotationValue) Float64() float64 { return v.f }

// Bool returns the value when Kind is KindBool, otherwise false.
func (v AnnotationValue) Bool() bool { return v.b }

// Str returns the value when Kind is KindString, otherwise "".
func (v AnnotationValue) Str() string { return v.s }

// Attribute converts the value into an OpenTelemetry attribute under key.
func (v AnnotationValue) Attribute(key string) attribute.KeyValue {
	switch v.kind {
	case KindInt64:
		return attribute.Int64(key, v.i)
	case KindFloat64:
		return attribute.Float64(key, v.f)
	case KindBool:
		return attribute.Bool(key, v.b)
	default:
		return attribute.String(key, v.s)
	}
}

func (v AnnotationValue) String() string {
	switch v.kind {
	case KindInt64:
		return fmt.Sprintf("int64(%d)", v.i)
	case KindFloat64:
		return fmt.Sprintf("float64(%g)", v.f)
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.b)
	default:
		return strconv.Quote(v.s)
	}
}

// Coerce types a raw annotation value. The first rule that matches wins:
// int64, float64, case-insensitive "true", case-insensitive "false", string.
// It never fails.
func Coerce(raw string) AnnotationValue {
	if i, ok := parseInt64(raw); ok {
		return Int64Value(i)
	}
	if f, ok := parseFloat64(raw); ok {
		return Float64Value(f)
	}
	if b, ok := parseBool(raw); ok {
		return BoolValue(b)
	}
	return StringValue(raw)
}

// parseInt64 accepts an optional sign followed by decimal digits within the
// int64 range.
func parseInt64(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

// parseFloat64 accepts everything strconv.ParseFloat does. A finite literal
// too large for float64 yields ±Inf.
func parseFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// parseBool accepts only "true" and "false", ignoring case. strconv.ParseBool
// is not used because it also accepts "1", "t" and "F".
func parseBool(s string) (bool, bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	default:
		return false, false
	}
}

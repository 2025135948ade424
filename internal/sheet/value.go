package sheet

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the runtime type of a cell value.
type Kind int

const (
	// KindMissing marks an empty cell. It is the zero Kind so that a zero
	// Value reads as missing.
	KindMissing Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindDatetime
)

// DatetimeLayout is the text layout used to render datetime cells.
const DatetimeLayout = "2006-01-02 15:04:05"

var kindNames = map[Kind]string{
	KindMissing:  "missing",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindBool:     "bool",
	KindDatetime: "datetime",
}

// String returns the type name printed in cell diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind as its type name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Value is a single cell value. Exactly one payload field is meaningful,
// selected by kind.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
}

// Missing returns the empty-cell marker.
func Missing() Value { return Value{} }

// Int returns an integer cell value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point cell value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a text cell value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean cell value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Datetime returns a timestamp cell value.
func Datetime(v time.Time) Value { return Value{kind: KindDatetime, t: v} }

// Number returns an int value when v is integral and fits in int64,
// otherwise a float value.
func Number(v float64) Value {
	if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		return Int(int64(v))
	}
	return Float(v)
}

// Kind reports the runtime type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the empty-cell marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// String renders the value as text.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDatetime:
		return v.t.Format(DatetimeLayout)
	default:
		return "NaN"
	}
}

// Interface returns the Go value carried by v. Missing cells yield nil and
// datetimes yield their text rendering.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindDatetime:
		return v.t.Format(DatetimeLayout)
	default:
		return nil
	}
}

// Time returns the timestamp of a datetime value.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDatetime {
		return time.Time{}, false
	}
	return v.t, true
}

// MarshalJSON encodes the value as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML encodes the value as its natural YAML scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

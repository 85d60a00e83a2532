package core

import (
	"strconv"
	"time"
)

// Kind identifies the type of a cell value.
type Kind uint8

// Cell value kinds.
const (
	KindMissing Kind = iota
	KindNumber
	KindString
	KindBool
	KindTime
)

// String returns the kind name for logging and rendering.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "missing"
	}
}

// Value is a single table cell. The zero value is the missing sentinel.
//
// Missing is a distinct value, not a default: transformers propagate it
// and never coerce it to zero, "" or false.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Missing is the propagating missing-value sentinel.
var Missing = Value{}

// Number returns a numeric cell value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string cell value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean cell value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a date/time cell value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing sentinel.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Number returns the numeric payload. ok is false for non-numeric cells.
func (v Value) Number() (f float64, ok bool) {
	return v.num, v.kind == KindNumber
}

// Text returns the string payload. ok is false for non-string cells.
func (v Value) Text() (s string, ok bool) {
	return v.str, v.kind == KindString
}

// Bool returns the boolean payload. ok is false for non-boolean cells.
func (v Value) Bool() (b bool, ok bool) {
	return v.b, v.kind == KindBool
}

// Time returns the time payload. ok is false for non-time cells.
func (v Value) Time() (t time.Time, ok bool) {
	return v.t, v.kind == KindTime
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// Key returns a canonical identity string for set membership and
// frequency counting. Distinct values map to distinct keys; the key of
// the missing sentinel is the empty string.
func (v Value) Key() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return "s:" + v.str
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindTime:
		return "t:" + v.t.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// String renders the value for display and CSV output. Missing renders
// as the empty string; integral numbers render without a decimal point.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// FormatNumber renders a float the way cells display it: integral
// values without a decimal point, everything else in shortest
// round-trip form.
func FormatNumber(f float64) string {
	if f >= -1e15 && f <= 1e15 && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

package goshape

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/goshape/codec"
)

// Value is the payload of a leaf element: exactly one of the six primitive
// kinds. The zero Value is invalid.
type Value struct {
	kind PrimitiveKind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
	d    time.Duration
}

func StringValue(s string) Value          { return Value{kind: PrimitiveString, s: s} }
func IntegerValue(i int64) Value          { return Value{kind: PrimitiveInteger, i: i} }
func DecimalValue(f float64) Value        { return Value{kind: PrimitiveDecimal, f: f} }
func BooleanValue(b bool) Value           { return Value{kind: PrimitiveBoolean, b: b} }
func DateTimeValue(t time.Time) Value     { return Value{kind: PrimitiveDateTime, t: t} }
func DurationValue(d time.Duration) Value { return Value{kind: PrimitiveDuration, d: d} }

// ZeroValue returns the zero payload of kind k.
func ZeroValue(k PrimitiveKind) Value { return Value{kind: k} }

// Kind returns the primitive kind of v.
func (v Value) Kind() PrimitiveKind { return v.kind }

// IsValid reports whether v carries one of the six primitive kinds.
func (v Value) IsValid() bool { return v.kind != PrimitiveInvalid }

func (v Value) AsString() (string, bool)          { return v.s, v.kind == PrimitiveString }
func (v Value) AsInteger() (int64, bool)          { return v.i, v.kind == PrimitiveInteger }
func (v Value) AsDecimal() (float64, bool)        { return v.f, v.kind == PrimitiveDecimal }
func (v Value) AsBoolean() (bool, bool)           { return v.b, v.kind == PrimitiveBoolean }
func (v Value) AsDateTime() (time.Time, bool)     { return v.t, v.kind == PrimitiveDateTime }
func (v Value) AsDuration() (time.Duration, bool) { return v.d, v.kind == PrimitiveDuration }

// Interface returns the payload as its canonical Go value: string, int64,
// float64, bool, time.Time or time.Duration. It returns nil for the invalid
// Value.
func (v Value) Interface() any {
	switch v.kind {
	case PrimitiveString:
		return v.s
	case PrimitiveInteger:
		return v.i
	case PrimitiveDecimal:
		return v.f
	case PrimitiveBoolean:
		return v.b
	case PrimitiveDateTime:
		return v.t
	case PrimitiveDuration:
		return v.d
	default:
		return nil
	}
}

// Equal reports whether v and o have the same kind and payload. DateTime
// payloads compare with time.Time.Equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == PrimitiveDateTime {
		return v.t.Equal(o.t)
	}
	return v.Interface() == o.Interface()
}

// Text returns the canonical text of the payload, as accepted by ParseValue.
func (v Value) Text() string {
	switch v.kind {
	case PrimitiveString:
		return v.s
	case PrimitiveInteger:
		return strconv.FormatInt(v.i, 10)
	case PrimitiveDecimal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case PrimitiveBoolean:
		return strconv.FormatBool(v.b)
	case PrimitiveDateTime:
		return codec.TimeRFC3339().Format(v.t)
	case PrimitiveDuration:
		return codec.Duration().Format(v.d)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == PrimitiveString {
		return strconv.Quote(v.s)
	}
	if !v.IsValid() {
		return "<invalid>"
	}
	return v.Text()
}

// ParseValue parses text entered for a leaf of kind k.
func ParseValue(k PrimitiveKind, text string) (Value, error) {
	switch k {
	case PrimitiveString:
		return StringValue(text), nil
	case PrimitiveInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("goshape: parse integer: %w", err)
		}
		return IntegerValue(i), nil
	case PrimitiveDecimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, fmt.Errorf("goshape: parse decimal: %w", err)
		}
		return DecimalValue(f), nil
	case PrimitiveBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("goshape: parse boolean: %w", err)
		}
		return BooleanValue(b), nil
	case PrimitiveDateTime:
		t, err := codec.TimeRFC3339().Parse(text)
		if err != nil {
			return Value{}, err
		}
		return DateTimeValue(t), nil
	case PrimitiveDuration:
		d, err := codec.Duration().Parse(text)
		if err != nil {
			return Value{}, err
		}
		return DurationValue(d), nil
	default:
		return Value{}, fmt.Errorf("goshape: cannot parse %s", k)
	}
}

package goshape

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// valueOf reads the payload of kind k out of v, whose type classified as a
// primitive of kind k.
func valueOf(v reflect.Value, k PrimitiveKind) (Value, error) {
	switch k {
	case PrimitiveString:
		return StringValue(v.String()), nil
	case PrimitiveInteger:
		if v.CanInt() {
			return IntegerValue(v.Int()), nil
		}
		u := v.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%d overflows int64", u)
		}
		return IntegerValue(int64(u)), nil
	case PrimitiveDecimal:
		return DecimalValue(v.Float()), nil
	case PrimitiveBoolean:
		return BooleanValue(v.Bool()), nil
	case PrimitiveDateTime:
		return DateTimeValue(v.Convert(goTime).Interface().(time.Time)), nil
	case PrimitiveDuration:
		return DurationValue(time.Duration(v.Int())), nil
	}
	return Value{}, fmt.Errorf("%s is not a primitive kind", k)
}

// assignValue stores val into the settable dst, whose type classified as a
// primitive of val's kind.
func assignValue(dst reflect.Value, val Value) error {
	switch val.Kind() {
	case PrimitiveString:
		dst.SetString(val.s)
	case PrimitiveInteger:
		if dst.CanInt() {
			if dst.OverflowInt(val.i) {
				return fmt.Errorf("%d overflows %s", val.i, dst.Type())
			}
			dst.SetInt(val.i)
			return nil
		}
		if val.i < 0 || dst.OverflowUint(uint64(val.i)) {
			return fmt.Errorf("%d overflows %s", val.i, dst.Type())
		}
		dst.SetUint(uint64(val.i))
	case PrimitiveDecimal:
		if dst.OverflowFloat(val.f) {
			return fmt.Errorf("%g overflows %s", val.f, dst.Type())
		}
		dst.SetFloat(val.f)
	case PrimitiveBoolean:
		dst.SetBool(val.b)
	case PrimitiveDateTime:
		dst.Set(reflect.ValueOf(val.t).Convert(dst.Type()))
	case PrimitiveDuration:
		dst.SetInt(int64(val.d))
	default:
		return fmt.Errorf("invalid value")
	}
	return nil
}

// readField follows index from the struct value v. It returns the invalid
// Value when a nil embedded pointer is on the way.
func readField(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// writableField follows index from the addressable struct value v,
// allocating nil embedded pointers on the way.
func writableField(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate embedded pointer to unexported %s", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("field is not settable")
	}
	return v, nil
}

package goshape

import "fmt"

// Kind is the structural variant of an Element, and of the Shape a type
// classifies to.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindValue        // Primitive leaf.
	KindEnum         // Selection among the constants of an enumeration.
	KindArray        // Ordered items sharing one element template.
	KindObject       // Ordered, uniquely named properties.
)

var kindStrings = [...]string{
	KindInvalid: "invalid",
	KindValue:   "value",
	KindEnum:    "enum",
	KindArray:   "array",
	KindObject:  "object",
}

// String returns the name of k.
func (k Kind) String() string {
	if int(k) < len(kindStrings) {
		return kindStrings[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// PrimitiveKind is the closed set of leaf payload kinds.
type PrimitiveKind uint8

const (
	PrimitiveInvalid PrimitiveKind = iota
	PrimitiveString
	PrimitiveInteger
	PrimitiveDecimal
	PrimitiveBoolean
	PrimitiveDateTime
	PrimitiveDuration
)

var primitiveStrings = [...]string{
	PrimitiveInvalid:  "invalid",
	PrimitiveString:   "string",
	PrimitiveInteger:  "integer",
	PrimitiveDecimal:  "decimal",
	PrimitiveBoolean:  "boolean",
	PrimitiveDateTime: "datetime",
	PrimitiveDuration: "duration",
}

// String returns the name of k.
func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveStrings) {
		return primitiveStrings[k]
	}
	return fmt.Sprintf("PrimitiveKind(%d)", k)
}

// ParsePrimitiveKind is the inverse of PrimitiveKind.String.
func ParsePrimitiveKind(s string) (PrimitiveKind, bool) {
	for i, name := range primitiveStrings {
		if i != int(PrimitiveInvalid) && name == s {
			return PrimitiveKind(i), true
		}
	}
	return PrimitiveInvalid, false
}

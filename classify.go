package goshape

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/goshape/internal/fields"
)

var (
	goTime       = reflect.TypeFor[time.Time]()
	goDuration   = reflect.TypeFor[time.Duration]()
	goEnumerated = reflect.TypeFor[Enumerated]()
	goDefaulter  = reflect.TypeFor[Defaulter]()
)

// primitiveTypes maps the exact Go types that are primitives to their kind.
var primitiveTypes = map[reflect.Type]PrimitiveKind{
	reflect.TypeFor[string]():  PrimitiveString,
	reflect.TypeFor[int]():     PrimitiveInteger,
	reflect.TypeFor[int8]():    PrimitiveInteger,
	reflect.TypeFor[int16]():   PrimitiveInteger,
	reflect.TypeFor[int32]():   PrimitiveInteger,
	reflect.TypeFor[int64]():   PrimitiveInteger,
	reflect.TypeFor[uint]():    PrimitiveInteger,
	reflect.TypeFor[uint8]():   PrimitiveInteger,
	reflect.TypeFor[uint16]():  PrimitiveInteger,
	reflect.TypeFor[uint32]():  PrimitiveInteger,
	reflect.TypeFor[uint64]():  PrimitiveInteger,
	reflect.TypeFor[float32](): PrimitiveDecimal,
	reflect.TypeFor[float64](): PrimitiveDecimal,
	reflect.TypeFor[bool]():    PrimitiveBoolean,
	goTime:                     PrimitiveDateTime,
	goDuration:                 PrimitiveDuration,
}

// Enumerated is implemented by types whose values form a closed, ordered set
// of constants. EnumMembers is called on the zero value and must list every
// constant, in declaration order, as values of the implementing type. Display
// names come from fmt.Stringer when implemented.
type Enumerated interface {
	EnumMembers() []any
}

// Defaulter is implemented by types that populate their own default values.
// SetToDefault is called on every freshly constructed instance.
type Defaulter interface {
	SetToDefault()
}

// Factory constructs a default instance of a registered type. The returned
// value must be of the registered type or a pointer to it; factories for
// interface types may return any implementation.
type Factory func() (any, error)

// EnumMember is one constant of an enumeration.
type EnumMember struct {
	Index int
	Name  string
	value reflect.Value
}

// Field is one eligible member of an Object shape.
type Field struct {
	Name  string
	Type  reflect.Type
	index []int
}

// Shape is the cached classification of a Go type.
type Shape struct {
	Kind Kind
	// Type is the classified type with pointer indirections removed.
	Type reflect.Type

	// Primitive is set for KindValue.
	Primitive PrimitiveKind
	// Elem is set for KindArray.
	Elem reflect.Type
	// Members is set for KindEnum.
	Members []EnumMember
	// Fields is set for KindObject; it is empty for non-struct objects.
	Fields []Field

	byName map[string]int
}

// FieldByName returns the member with the exact key name.
func (s *Shape) FieldByName(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// memberIndex returns the index of the constant equal to v, or -1.
func (s *Shape) memberIndex(v reflect.Value) int {
	for _, m := range s.Members {
		if m.value.Equal(v) {
			return m.Index
		}
	}
	return -1
}

// Classifier determines and caches the Shape of Go types. Shapes never
// change once computed, so the cache is never cleared.
type Classifier struct {
	shapes     sync.Map // reflect.Type -> *Shape
	enums      sync.Map // reflect.Type -> []reflect.Value
	primitives sync.Map // reflect.Type -> PrimitiveKind
	factories  sync.Map // reflect.Type -> Factory

	logger log.Logger
}

// NewClassifier creates an empty Classifier. A nil logger discards output.
func NewClassifier(logger log.Logger) *Classifier {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Classifier{logger: logger}
}

// DefaultClassifier is used whenever no Classifier is supplied.
var DefaultClassifier = NewClassifier(nil)

// Classify returns the Shape of t using DefaultClassifier.
func Classify(t reflect.Type) (*Shape, error) { return DefaultClassifier.Classify(t) }

// Classify returns the Shape of t. Pointer types classify as their element
// type.
func (c *Classifier) Classify(t reflect.Type) (*Shape, error) {
	return c.classifyAt(t, Root())
}

func (c *Classifier) classifyAt(t reflect.Type, p PathRef) (*Shape, error) {
	if t == nil {
		return nil, fail(p, CodeInvalidShape, nil, "type", "<nil>", "reason", "no type")
	}
	t = derefType(t)
	if s, ok := c.shapes.Load(t); ok {
		return s.(*Shape), nil
	}

	s, err := c.classify(t, p)
	if err != nil {
		return nil, err
	}
	actual, loaded := c.shapes.LoadOrStore(t, s)
	if !loaded {
		level.Debug(c.logger).Log("msg", "classified type", "type", t, "shape", s.Kind)
	}
	return actual.(*Shape), nil
}

func (c *Classifier) classify(t reflect.Type, p PathRef) (*Shape, error) {
	// 1. Enumerations.
	members, isEnum, err := c.enumMembers(t, p)
	if err != nil {
		return nil, err
	}
	if isEnum {
		return &Shape{Kind: KindEnum, Type: t, Members: members}, nil
	}

	// 2. Primitives by exact identity.
	if k, ok := primitiveTypes[t]; ok {
		return &Shape{Kind: KindValue, Type: t, Primitive: k}, nil
	}
	if k, ok := c.primitives.Load(t); ok {
		return &Shape{Kind: KindValue, Type: t, Primitive: k.(PrimitiveKind)}, nil
	}

	// 3. Single-element-type iterables.
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elem := t.Elem()
		if derefType(elem).Kind() == reflect.Interface {
			return nil, fail(p, CodeUnresolvableElementType, nil, "type", t)
		}
		return &Shape{Kind: KindArray, Type: t, Elem: elem}, nil
	case reflect.Map:
		return nil, fail(p, CodeUnresolvableElementType, nil, "type", t)
	}

	// 4. Everything else is an object.
	s := &Shape{Kind: KindObject, Type: t, byName: map[string]int{}}
	if t.Kind() != reflect.Struct {
		return s, nil
	}
	fs, err := fields.Get(t)
	if err != nil {
		var dup *fields.DuplicateError
		if errors.As(err, &dup) {
			return nil, fail(p, CodeInvalidShape, err, "type", t, "reason", fmt.Sprintf("key %q is declared twice", dup.Name))
		}
		return nil, fail(p, CodeInvalidShape, err, "type", t, "reason", err.Error())
	}
	for i, f := range fs {
		s.Fields = append(s.Fields, Field{Name: f.Name, Type: f.Type, index: f.Index})
		s.byName[f.Name] = i
	}
	return s, nil
}

func (c *Classifier) enumMembers(t reflect.Type, p PathRef) ([]EnumMember, bool, error) {
	var raw []reflect.Value
	if v, ok := c.enums.Load(t); ok {
		raw = v.([]reflect.Value)
	} else {
		var recv reflect.Value
		switch {
		case t.Kind() == reflect.Interface:
			return nil, false, nil
		case t.Implements(goEnumerated):
			recv = reflect.Zero(t)
		case reflect.PointerTo(t).Implements(goEnumerated):
			recv = reflect.New(t)
		default:
			return nil, false, nil
		}
		for _, m := range recv.Interface().(Enumerated).EnumMembers() {
			mv := reflect.ValueOf(m)
			if !mv.IsValid() || mv.Type() != t {
				return nil, false, fail(p, CodeInvalidShape, nil, "type", t, "reason", fmt.Sprintf("enum member %v is not a %s", m, t))
			}
			raw = append(raw, mv)
		}
	}
	if len(raw) == 0 {
		return nil, false, fail(p, CodeInvalidShape, nil, "type", t, "reason", "enumeration has no members")
	}

	members := make([]EnumMember, len(raw))
	for i, mv := range raw {
		members[i] = EnumMember{Index: i, Name: displayName(mv), value: mv}
	}
	return members, true, nil
}

func displayName(v reflect.Value) string {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}

// RegisterEnum declares T as an enumeration whose constants are members, in
// order. It must be called before T is first classified. A nil Classifier
// means DefaultClassifier.
func RegisterEnum[T comparable](c *Classifier, members ...T) error {
	if c == nil {
		c = DefaultClassifier
	}
	t := reflect.TypeFor[T]()
	if err := c.checkUnclassified(t); err != nil {
		return err
	}
	if len(members) == 0 {
		return fail(Root(), CodeInvalidShape, nil, "type", t, "reason", "enumeration has no members")
	}
	raw := make([]reflect.Value, len(members))
	for i, m := range members {
		raw[i] = reflect.ValueOf(m)
	}
	c.enums.Store(t, raw)
	return nil
}

// RegisterPrimitive declares the named type t as a primitive of kind k. The
// underlying type of t must hold kind k.
func (c *Classifier) RegisterPrimitive(t reflect.Type, k PrimitiveKind) error {
	if err := c.checkUnclassified(t); err != nil {
		return err
	}
	if !primitiveCompatible(t, k) {
		return fail(Root(), CodeInvalidShape, nil, "type", t, "reason", fmt.Sprintf("underlying type cannot hold %s", k))
	}
	c.primitives.Store(t, k)
	return nil
}

// RegisterFactory declares fn as the default constructor of t. Pointer types
// register their element type.
func (c *Classifier) RegisterFactory(t reflect.Type, fn Factory) error {
	if t == nil || fn == nil {
		return fail(Root(), CodeInvalidShape, nil, "type", t, "reason", "nil factory")
	}
	c.factories.Store(derefType(t), fn)
	return nil
}

func (c *Classifier) checkUnclassified(t reflect.Type) error {
	if t == nil {
		return fail(Root(), CodeInvalidShape, nil, "type", "<nil>", "reason", "no type")
	}
	if _, ok := c.shapes.Load(t); ok {
		return fail(Root(), CodeInvalidShape, nil, "type", t, "reason", "type was already classified")
	}
	return nil
}

// newInstance returns a settable default instance of t: the registered
// factory's result, or a zero value. Defaulter is applied to either.
func (c *Classifier) newInstance(t reflect.Type, p PathRef) (reflect.Value, error) {
	var v reflect.Value
	if fn, ok := c.factories.Load(t); ok {
		out, err := fn.(Factory)()
		if err != nil {
			return reflect.Value{}, fail(p, CodeDefaultConstruction, err, "type", t)
		}
		ov := reflect.ValueOf(out)
		switch {
		case ov.IsValid() && ov.Type() == t:
			v = reflect.New(t).Elem()
			v.Set(ov)
		case ov.IsValid() && ov.Type() == reflect.PointerTo(t) && !ov.IsNil():
			v = ov.Elem()
		case ov.IsValid() && t.Kind() == reflect.Interface && ov.Type().Implements(t):
			v = reflect.New(t).Elem()
			v.Set(ov)
		default:
			return reflect.Value{}, fail(p, CodeDefaultConstruction, fmt.Errorf("factory returned %T", out), "type", t)
		}
	} else {
		if t.Kind() == reflect.Interface {
			return reflect.Value{}, fail(p, CodeDefaultConstruction, nil, "type", t)
		}
		v = reflect.New(t).Elem()
	}

	if v.CanAddr() && v.Addr().Type().Implements(goDefaulter) {
		v.Addr().Interface().(Defaulter).SetToDefault()
	}
	return v, nil
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func primitiveCompatible(t reflect.Type, k PrimitiveKind) bool {
	switch k {
	case PrimitiveString:
		return t.Kind() == reflect.String
	case PrimitiveInteger:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
	case PrimitiveDecimal:
		return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	case PrimitiveBoolean:
		return t.Kind() == reflect.Bool
	case PrimitiveDateTime:
		return t.ConvertibleTo(goTime) && t.Kind() == reflect.Struct
	case PrimitiveDuration:
		return t.Kind() == reflect.Int64
	}
	return false
}

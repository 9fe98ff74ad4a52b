package goshape

import (
	"reflect"

	"github.com/go-kit/log/level"
)

// Encoder builds element trees from Go types and values.
type Encoder struct {
	opts options
}

// NewEncoder creates an Encoder with the supplied options.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{opts: buildOptions(opts)}
}

// Encode builds a tree for type t using a new Encoder. See Encoder.Encode.
func Encode(t reflect.Type, instance any, opts ...Option) (Element, error) {
	return NewEncoder(opts...).Encode(t, instance)
}

// EncodeValue builds a tree for instance using its runtime type.
func EncodeValue(instance any, opts ...Option) (Element, error) {
	return NewEncoder(opts...).EncodeValue(instance)
}

// EncodeOf builds a tree for v using the static type T.
func EncodeOf[T any](v T, opts ...Option) (Element, error) {
	return NewEncoder(opts...).Encode(reflect.TypeFor[T](), v)
}

// EncodeDefault builds the default tree of T.
func EncodeDefault[T any](opts ...Option) (Element, error) {
	return NewEncoder(opts...).Encode(reflect.TypeFor[T](), nil)
}

// EncodeValue builds a tree for instance using its runtime type. It is
// equivalent to Encode(reflect.TypeOf(instance), instance).
func (e *Encoder) EncodeValue(instance any) (Element, error) {
	if instance == nil {
		return Element{}, fail(Root(), CodeInvalidShape, nil, "type", "<nil>", "reason", "no type")
	}
	return e.Encode(reflect.TypeOf(instance), instance)
}

// Encode builds a tree describing type t, populated from instance when it is
// not nil. instance may be a value of t or a pointer to one. Properties and
// items appear in declaration and source order.
//
// On failure no tree is returned.
func (e *Encoder) Encode(t reflect.Type, instance any) (Element, error) {
	if t == nil {
		return Element{}, fail(Root(), CodeInvalidShape, nil, "type", "<nil>", "reason", "no type")
	}
	var v reflect.Value
	if instance != nil {
		v = reflect.ValueOf(instance)
		base := derefType(t)
		if base.Kind() == reflect.Interface {
			// Interfaces encode by their declared shape.
			if !v.Type().Implements(base) {
				return Element{}, fail(Root(), CodeTypeMismatch, nil, "expected", t, "got", v.Type())
			}
		} else {
			for v.Kind() == reflect.Pointer && v.Type() != base && !v.IsNil() {
				v = v.Elem()
			}
			switch {
			case v.Kind() == reflect.Pointer && v.IsNil() && derefType(v.Type()) == base:
				v = reflect.Value{}
			case v.Type() == base:
			case v.Type().AssignableTo(base):
				v = v.Convert(base)
			default:
				return Element{}, fail(Root(), CodeTypeMismatch, nil, "expected", t, "got", v.Type())
			}
		}
	}

	st := &encodeState{opts: &e.opts, tree: newTree(e.opts.policy)}
	root, err := st.encode(t, v, Root())
	if err != nil {
		level.Debug(e.opts.logger).Log("msg", "encode failed", "type", t, "err", err)
		return Element{}, err
	}
	st.tree.root = root
	return st.tree.Root(), nil
}

type encodeState struct {
	opts *options
	tree *Tree
	// path holds the object and array types on the current recursion path.
	path []reflect.Type
}

func (st *encodeState) enter(t reflect.Type, p PathRef) error {
	for _, seen := range st.path {
		if seen == t {
			level.Debug(st.opts.logger).Log("msg", "cyclic type graph", "type", t, "path", p.Pointer())
			return fail(p, CodeCyclicTypeGraph, nil, "type", t)
		}
	}
	st.path = append(st.path, t)
	return nil
}

func (st *encodeState) leave() { st.path = st.path[:len(st.path)-1] }

func (st *encodeState) encode(t reflect.Type, v reflect.Value, p PathRef) (nodeID, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		if v.IsValid() && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v = reflect.Value{}
			} else {
				v = v.Elem()
			}
		}
	}

	shape, err := st.opts.classifier.classifyAt(t, p)
	if err != nil {
		return noNode, err
	}

	var id nodeID
	switch shape.Kind {
	case KindValue:
		val := ZeroValue(shape.Primitive)
		if v.IsValid() {
			if val, err = valueOf(v, shape.Primitive); err != nil {
				return noNode, fail(p, CodeTypeMismatch, err, "expected", shape.Primitive, "got", v.Type())
			}
		}
		id = st.tree.newValue(t, val)

	case KindEnum:
		options := make([]EnumOption, len(shape.Members))
		for i, m := range shape.Members {
			options[i] = EnumOption{Index: m.Index, Name: m.Name}
		}
		selected := 0
		if v.IsValid() {
			if i := shape.memberIndex(v); i >= 0 {
				selected = i
			}
		}
		id = st.tree.newEnum(t, options, selected)

	case KindArray:
		if err := st.enter(t, p); err != nil {
			return noNode, err
		}
		defer st.leave()

		tmpl, err := st.encode(shape.Elem, reflect.Value{}, p.Field("-"))
		if err != nil {
			return noNode, err
		}
		var items []nodeID
		if v.IsValid() {
			items = make([]nodeID, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				item, err := st.encode(shape.Elem, v.Index(i), p.Index(i))
				if err != nil {
					return noNode, err
				}
				items = append(items, item)
			}
		}
		id = st.tree.newArray(t, tmpl, items)

	case KindObject:
		if err := st.enter(t, p); err != nil {
			return noNode, err
		}
		defer st.leave()

		if !v.IsValid() && len(shape.Fields) > 0 {
			// Seed default field values from a transient instance.
			if v, err = st.opts.classifier.newInstance(t, p); err != nil {
				return noNode, err
			}
		}
		id = st.tree.newObject(t)
		for _, f := range shape.Fields {
			var fv reflect.Value
			if v.IsValid() {
				fv = readField(v, f.index)
			}
			fp := p.Field(f.Name)
			child, err := st.encode(f.Type, fv, fp)
			if err != nil {
				return noNode, err
			}
			if err := st.tree.addProperty(id, f.Name, child, fp); err != nil {
				return noNode, err
			}
		}

	default:
		return noNode, fail(p, CodeInvalidShape, nil, "type", t, "reason", "unknown shape")
	}

	if r, ok := st.opts.resolvers[t]; ok {
		st.tree.nodes[id].resolver = r
	}
	return id, nil
}

package goshape

import (
	"reflect"

	"github.com/agnivade/levenshtein"
	"github.com/go-kit/log/level"
)

// Decoder rebuilds Go values from element trees.
type Decoder struct {
	opts options
}

// NewDecoder creates a Decoder with the supplied options.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{opts: buildOptions(opts)}
}

// Decode rebuilds a T from el. See Decoder.DecodeType.
func Decode[T any](el Element, opts ...Option) (T, error) {
	var zero T
	v, err := NewDecoder(opts...).DecodeType(el, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// DecodeInto rebuilds the value pointed to by target from el. target is
// left untouched on failure.
func DecodeInto(el Element, target any, opts ...Option) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fail(Root(), CodeTypeMismatch, nil, "expected", "non-nil pointer", "got", reflect.TypeOf(target))
	}
	v, err := NewDecoder(opts...).DecodeType(el, rv.Type().Elem())
	if err != nil {
		return err
	}
	rv.Elem().Set(v)
	return nil
}

// DecodeType rebuilds a value of type t from el.
//
// When a context was supplied with WithContext, el.ApplyContext runs first.
// Decoding is all-or-nothing: on failure the zero Value is returned together
// with Issues naming the offending path, type, identifier or index.
func (d *Decoder) DecodeType(el Element, t reflect.Type) (reflect.Value, error) {
	if !el.IsValid() || t == nil {
		return reflect.Value{}, fail(Root(), CodeInvalidShape, nil, "type", t, "reason", "nothing to decode")
	}
	if d.opts.hasContext {
		if err := el.ApplyContext(d.opts.context); err != nil {
			return reflect.Value{}, err
		}
	}
	v, err := d.decode(el.tree, el.id, t, el.tree.pathOf(el.id))
	if err != nil {
		level.Debug(d.opts.logger).Log("msg", "decode failed", "type", t, "err", err)
		return reflect.Value{}, err
	}
	return v, nil
}

func (d *Decoder) decode(tree *Tree, id nodeID, t reflect.Type, p PathRef) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		inner, err := d.decode(tree, id, t.Elem(), p)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	}

	n := &tree.nodes[id]
	if t.Kind() == reflect.Interface && n.typ != nil && n.typ.Kind() != reflect.Interface && n.typ.Implements(t) {
		// Interface targets take the type the element was encoded from.
		inner, err := d.decode(tree, id, n.typ, p)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		out.Set(inner)
		return out, nil
	}

	if n.kind == KindArray && t.Kind() != reflect.Slice {
		return reflect.Value{}, fail(p, CodeUnsupportedCollectionType, nil, "type", t)
	}

	shape, err := d.opts.classifier.classifyAt(t, p)
	if err != nil {
		return reflect.Value{}, err
	}
	if n.kind != shape.Kind {
		return reflect.Value{}, fail(p, CodeTypeMismatch, nil, "expected", shape.Kind, "got", n.kind)
	}

	switch shape.Kind {
	case KindValue:
		if n.value.Kind() != shape.Primitive {
			return reflect.Value{}, fail(p, CodeTypeMismatch, nil, "expected", shape.Primitive, "got", n.value.Kind())
		}
		out := reflect.New(t).Elem()
		if err := assignValue(out, n.value); err != nil {
			return reflect.Value{}, fail(p, CodeTypeMismatch, err, "expected", t, "got", n.value)
		}
		return out, nil

	case KindEnum:
		if n.selected < 0 || n.selected >= len(shape.Members) {
			return reflect.Value{}, fail(p, CodeInvalidEnumIndex, nil, "index", n.selected, "type", t)
		}
		out := reflect.New(t).Elem()
		out.Set(shape.Members[n.selected].value)
		return out, nil

	case KindArray:
		out, err := d.opts.classifier.newInstance(t, p)
		if err != nil {
			return reflect.Value{}, err
		}
		items := n.items
		if out.IsNil() {
			out.Set(reflect.MakeSlice(t, 0, len(items)))
		} else if out.Len() > 0 {
			out.SetLen(0)
		}
		for i, item := range items {
			iv, err := d.decode(tree, item, t.Elem(), p.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Set(reflect.Append(out, iv))
		}
		return out, nil

	case KindObject:
		out, err := d.opts.classifier.newInstance(t, p)
		if err != nil {
			return reflect.Value{}, err
		}
		props := n.props
		for _, pr := range props {
			fp := p.Field(pr.ident)
			f, ok := d.lookupField(tree, shape, pr.ident)
			if !ok {
				kv := []any{"identifier", pr.ident, "type", t}
				if near := nearestField(shape, pr.ident); near != "" {
					kv = append(kv, "suggestion", near)
				}
				return reflect.Value{}, fail(fp, CodeMissingProperty, nil, kv...)
			}
			fv, err := d.decode(tree, pr.value, f.Type, fp)
			if err != nil {
				return reflect.Value{}, err
			}
			dst, err := writableField(out, f.index)
			if err != nil {
				return reflect.Value{}, fail(fp, CodePropertySet, err, "identifier", pr.ident, "type", t)
			}
			dst.Set(fv)
		}
		return out, nil
	}
	return reflect.Value{}, fail(p, CodeInvalidShape, nil, "type", t, "reason", "unknown shape")
}

// lookupField finds the member for ident: by exact key first, then under the
// tree's identifier policy.
func (d *Decoder) lookupField(tree *Tree, shape *Shape, ident string) (Field, bool) {
	if f, ok := shape.FieldByName(ident); ok {
		return f, true
	}
	key := tree.policy.Key(ident)
	for _, f := range shape.Fields {
		if tree.policy.Key(f.Name) == key {
			return f, true
		}
	}
	return Field{}, false
}

// nearestField returns the member name closest to ident by edit distance,
// or "" when none is within two edits.
func nearestField(shape *Shape, ident string) string {
	best, bestDist := "", 3
	for _, f := range shape.Fields {
		if d := levenshtein.ComputeDistance(ident, f.Name); d < bestDist {
			best, bestDist = f.Name, d
		}
	}
	return best
}

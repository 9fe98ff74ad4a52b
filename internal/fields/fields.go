// Package fields enumerates the eligible members of Go struct types.
//
// A member is eligible when it is exported and not excluded with the
// `goshape:"-"` tag. Anonymous struct members without an explicit name are
// flattened into their parent, following the encoding/json promotion rules.
package fields

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag consulted before the json tag.
const TagName = "goshape"

// Field is one eligible member of a struct type.
type Field struct {
	// Name is the external key of the member.
	Name string
	// Index is the index path accepted by reflect.Value.FieldByIndex.
	Index []int
	// Type is the declared type of the member.
	Type reflect.Type

	depth  int
	tagged bool
}

// DuplicateError reports two members of the same depth resolving to the same
// key.
type DuplicateError struct {
	Type reflect.Type
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("fields: %s declares key %q more than once", e.Type, e.Name)
}

// ResolveKey applies the key rule for a struct member.
// Priority: goshape:"name=..." > json tag name > field name; "-" disables the
// member.
func ResolveKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get(TagName); gt != "" {
		if gt == "-" {
			return "-"
		}
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

func explicitKey(sf reflect.StructField) bool {
	return ResolveKey(sf) != sf.Name
}

// Get returns the eligible members of struct type t in declaration order.
// Get panics if t is not a struct type.
func Get(t reflect.Type) ([]Field, error) {
	if t.Kind() != reflect.Struct {
		panic("fields.Get called with non-struct type")
	}

	var all []Field
	collect(t, nil, 0, map[reflect.Type]bool{t: true}, &all)

	// Shallower members hide deeper ones with the same key.
	best := make(map[string]int, len(all))
	for i, f := range all {
		j, seen := best[f.Name]
		switch {
		case !seen:
			best[f.Name] = i
		case f.depth < all[j].depth:
			best[f.Name] = i
		case f.depth == all[j].depth:
			if f.tagged == all[j].tagged {
				return nil, &DuplicateError{Type: t, Name: f.Name}
			}
			if f.tagged {
				best[f.Name] = i
			}
		}
	}

	out := make([]Field, 0, len(best))
	for i, f := range all {
		if best[f.Name] == i {
			out = append(out, f)
		}
	}
	return out, nil
}

func collect(t reflect.Type, prefix []int, depth int, visiting map[reflect.Type]bool, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key := ResolveKey(sf)
		if key == "-" {
			continue
		}

		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if sf.Anonymous && !explicitKey(sf) {
			inner := sf.Type
			if inner.Kind() == reflect.Pointer {
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				if visiting[inner] {
					continue
				}
				visiting[inner] = true
				collect(inner, index, depth+1, visiting, out)
				delete(visiting, inner)
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}
		*out = append(*out, Field{
			Name:   key,
			Index:  index,
			Type:   sf.Type,
			depth:  depth,
			tagged: explicitKey(sf),
		})
	}
}

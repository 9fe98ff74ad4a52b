// Package jsonschema projects element trees into JSON Schema documents for
// form-based editors.
package jsonschema

import (
	"github.com/reoring/goshape"
)

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Title   string `json:"title,omitempty"`
	Default any    `json:"default,omitempty"`
	Enum    []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// FromElement describes the shape of the subtree at el. Leaves carry their
// current payload as default, enums their selected option. Array items are
// described by the template; the current items are not part of the schema.
//
// Object property order is kept in Required, which lists every identifier.
func FromElement(el goshape.Element) *Schema {
	switch el.Kind() {
	case goshape.KindValue:
		return fromValue(el.Value())
	case goshape.KindEnum:
		opts := el.Options()
		s := &Schema{Type: "string", Enum: make([]any, len(opts))}
		for i, o := range opts {
			s.Enum[i] = o.Name
		}
		if sel := el.Selected(); sel >= 0 && sel < len(opts) {
			s.Default = opts[sel].Name
		}
		return s
	case goshape.KindArray:
		return &Schema{Type: "array", Items: FromElement(el.Template())}
	case goshape.KindObject:
		s := &Schema{
			Type:                 "object",
			Properties:           map[string]*Schema{},
			AdditionalProperties: false,
		}
		if t := el.Type(); t != nil && t.Name() != "" {
			s.Title = t.Name()
		}
		for _, p := range el.Properties() {
			s.Properties[p.Identifier()] = FromElement(p.Value())
			s.Required = append(s.Required, p.Identifier())
		}
		return s
	}
	return &Schema{}
}

func fromValue(v goshape.Value) *Schema {
	switch v.Kind() {
	case goshape.PrimitiveString:
		return &Schema{Type: "string", Default: v.Interface()}
	case goshape.PrimitiveInteger:
		return &Schema{Type: "integer", Default: v.Interface()}
	case goshape.PrimitiveDecimal:
		return &Schema{Type: "number", Default: v.Interface()}
	case goshape.PrimitiveBoolean:
		return &Schema{Type: "boolean", Default: v.Interface()}
	case goshape.PrimitiveDateTime:
		return &Schema{Type: "string", Format: "date-time", Default: v.Text()}
	case goshape.PrimitiveDuration:
		return &Schema{Type: "string", Format: "go-duration", Default: v.Text()}
	}
	return &Schema{}
}

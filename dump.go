package goshape

import (
	"github.com/goccy/go-json"
)

// dumpNode is the JSON inspection view of one element.
type dumpNode struct {
	Kind      string         `json:"kind"`
	Type      string         `json:"type,omitempty"`
	Primitive string         `json:"primitive,omitempty"`
	Value     any            `json:"value,omitempty"`
	Options   []string       `json:"options,omitempty"`
	Selected  *int           `json:"selected,omitempty"`
	Template  *dumpNode      `json:"template,omitempty"`
	Items     []dumpNode     `json:"items,omitempty"`
	Props     []dumpProperty `json:"properties,omitempty"`
}

type dumpProperty struct {
	Identifier string   `json:"identifier"`
	Value      dumpNode `json:"value"`
}

// MarshalJSON renders the subtree at e for inspection. The output is a
// one-way view and cannot be decoded back into a tree.
func (e Element) MarshalJSON() ([]byte, error) {
	if !e.IsValid() {
		return []byte("null"), nil
	}
	return json.Marshal(e.tree.dump(e.id))
}

func (t *Tree) dump(id nodeID) dumpNode {
	n := &t.nodes[id]
	d := dumpNode{Kind: n.kind.String()}
	if n.typ != nil {
		d.Type = n.typ.String()
	}
	switch n.kind {
	case KindValue:
		d.Primitive = n.value.Kind().String()
		switch n.value.Kind() {
		case PrimitiveDateTime, PrimitiveDuration:
			d.Value = n.value.Text()
		default:
			d.Value = n.value.Interface()
		}
	case KindEnum:
		d.Options = make([]string, len(n.options))
		for i, o := range n.options {
			d.Options[i] = o.Name
		}
		sel := n.selected
		d.Selected = &sel
	case KindArray:
		tmpl := t.dump(n.template)
		d.Template = &tmpl
		d.Items = make([]dumpNode, len(n.items))
		for i, it := range n.items {
			d.Items[i] = t.dump(it)
		}
	case KindObject:
		d.Props = make([]dumpProperty, len(n.props))
		for i, pr := range n.props {
			d.Props[i] = dumpProperty{Identifier: pr.ident, Value: t.dump(pr.value)}
		}
	}
	return d
}

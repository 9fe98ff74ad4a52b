package goshape

import (
	"reflect"
)

// nodeID indexes a node in its Tree's arena.
type nodeID int32

const noNode nodeID = -1

// Tree owns every element of one encoded object graph. Elements and
// properties refer to each other by arena index, never by pointer.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes  []node
	root   nodeID
	policy IdentifierPolicy
}

type node struct {
	kind   Kind
	typ    reflect.Type
	parent nodeID

	// KindValue
	value Value

	// KindEnum
	options  []EnumOption
	selected int

	// KindArray
	template nodeID
	items    []nodeID

	// KindObject
	props []prop

	resolver Resolver
}

type prop struct {
	ident string
	value nodeID
}

// EnumOption is one selectable constant of an Enum element.
type EnumOption struct {
	Index int
	Name  string
}

func newTree(policy IdentifierPolicy) *Tree {
	if policy == nil {
		policy = ExactIdentifiers
	}
	return &Tree{root: noNode, policy: policy}
}

// Root returns the root element of t.
func (t *Tree) Root() Element { return Element{tree: t, id: t.root} }

// Policy returns the identifier comparison used by t.
func (t *Tree) Policy() IdentifierPolicy { return t.policy }

func (t *Tree) add(n node) nodeID {
	n.parent = noNode
	t.nodes = append(t.nodes, n)
	return nodeID(len(t.nodes) - 1)
}

func (t *Tree) newValue(typ reflect.Type, v Value) nodeID {
	return t.add(node{kind: KindValue, typ: typ, value: v})
}

func (t *Tree) newEnum(typ reflect.Type, options []EnumOption, selected int) nodeID {
	return t.add(node{kind: KindEnum, typ: typ, options: options, selected: selected})
}

func (t *Tree) newArray(typ reflect.Type, template nodeID, items []nodeID) nodeID {
	id := t.add(node{kind: KindArray, typ: typ, template: template, items: items})
	t.nodes[template].parent = id
	for _, it := range items {
		t.nodes[it].parent = id
	}
	return id
}

func (t *Tree) newObject(typ reflect.Type) nodeID {
	return t.add(node{kind: KindObject, typ: typ, template: noNode})
}

// addProperty appends a property to object id, enforcing identifier
// uniqueness.
func (t *Tree) addProperty(id nodeID, ident string, value nodeID, p PathRef) error {
	if _, dup := t.findProperty(id, ident, -1); dup {
		return fail(p, CodeDuplicateIdentifier, nil, "identifier", ident)
	}
	t.nodes[id].props = append(t.nodes[id].props, prop{ident: ident, value: value})
	t.nodes[value].parent = id
	return nil
}

// findProperty returns the slot of the property of object id whose
// identifier equals ident under the tree policy, skipping slot except.
func (t *Tree) findProperty(id nodeID, ident string, except int) (int, bool) {
	key := t.policy.Key(ident)
	for i, pr := range t.nodes[id].props {
		if i == except {
			continue
		}
		if t.policy.Key(pr.ident) == key {
			return i, true
		}
	}
	return -1, false
}

// clone deep-copies the subtree rooted at id and returns the detached copy.
func (t *Tree) clone(id nodeID) nodeID {
	src := t.nodes[id]
	switch src.kind {
	case KindEnum:
		n := src
		n.options = append([]EnumOption(nil), src.options...)
		return t.add(n)
	case KindArray:
		tmpl := t.clone(src.template)
		items := make([]nodeID, len(src.items))
		for i, it := range src.items {
			items[i] = t.clone(it)
		}
		cp := t.newArray(src.typ, tmpl, items)
		t.nodes[cp].resolver = src.resolver
		return cp
	case KindObject:
		cp := t.newObject(src.typ)
		t.nodes[cp].resolver = src.resolver
		props := make([]prop, len(src.props))
		for i, pr := range src.props {
			v := t.clone(pr.value)
			t.nodes[v].parent = cp
			props[i] = prop{ident: pr.ident, value: v}
		}
		t.nodes[cp].props = props
		return cp
	default:
		return t.add(src)
	}
}

// sameShape reports whether the subtrees a and b have the same variant and,
// recursively, the same shape. Identifiers are not part of the shape.
func (t *Tree) sameShape(a, b nodeID) bool {
	na, nb := &t.nodes[a], &t.nodes[b]
	if na.kind != nb.kind {
		return false
	}
	switch na.kind {
	case KindValue:
		return na.value.Kind() == nb.value.Kind()
	case KindEnum:
		if len(na.options) != len(nb.options) {
			return false
		}
		for i := range na.options {
			if na.options[i] != nb.options[i] {
				return false
			}
		}
		return true
	case KindArray:
		return t.sameShape(na.template, nb.template)
	case KindObject:
		if len(na.props) != len(nb.props) {
			return false
		}
		for i := range na.props {
			if !t.sameShape(na.props[i].value, nb.props[i].value) {
				return false
			}
		}
		return true
	}
	return false
}

// walk visits the subtree at id depth-first, children before their parent.
// Array templates are not visited.
func (t *Tree) walk(id nodeID, fn func(nodeID) error) error {
	n := &t.nodes[id]
	switch n.kind {
	case KindArray:
		for _, it := range n.items {
			if err := t.walk(it, fn); err != nil {
				return err
			}
		}
	case KindObject:
		for _, pr := range n.props {
			if err := t.walk(pr.value, fn); err != nil {
				return err
			}
		}
	}
	return fn(id)
}

// pathOf rebuilds the JSON Pointer of id from the parent links.
func (t *Tree) pathOf(id nodeID) PathRef {
	var segs []func(PathRef) PathRef
	for cur := id; cur != noNode && cur != t.root; {
		parent := t.nodes[cur].parent
		if parent == noNode {
			break
		}
		pn := &t.nodes[parent]
		switch pn.kind {
		case KindArray:
			if cur == pn.template {
				segs = append(segs, func(p PathRef) PathRef { return p.Field("-") })
				break
			}
			for i, it := range pn.items {
				if it == cur {
					i := i
					segs = append(segs, func(p PathRef) PathRef { return p.Index(i) })
					break
				}
			}
		case KindObject:
			for _, pr := range pn.props {
				if pr.value == cur {
					name := pr.ident
					segs = append(segs, func(p PathRef) PathRef { return p.Field(name) })
					break
				}
			}
		}
		cur = parent
	}
	p := Root()
	for i := len(segs) - 1; i >= 0; i-- {
		p = segs[i](p)
	}
	return p
}

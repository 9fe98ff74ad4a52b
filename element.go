package goshape

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Element is a handle to one node of a Tree: a Value, Enum, Array or Object.
// The zero Element is invalid.
type Element struct {
	tree *Tree
	id   nodeID
}

// Property is a handle to one named member of an Object element.
type Property struct {
	tree  *Tree
	owner nodeID
	slot  int
}

// IsValid reports whether e refers to a node.
func (e Element) IsValid() bool { return e.tree != nil && e.id != noNode }

// Tree returns the tree owning e.
func (e Element) Tree() *Tree { return e.tree }

func (e Element) node() *node { return &e.tree.nodes[e.id] }

// Kind returns the variant of e.
func (e Element) Kind() Kind {
	if !e.IsValid() {
		return KindInvalid
	}
	return e.node().kind
}

// Type returns the Go type e was encoded from.
func (e Element) Type() reflect.Type { return e.node().typ }

// Path returns the JSON Pointer of e within its tree.
func (e Element) Path() string { return e.tree.pathOf(e.id).Pointer() }

// Parent returns the element containing e, if any.
func (e Element) Parent() (Element, bool) {
	p := e.node().parent
	if p == noNode {
		return Element{}, false
	}
	return Element{tree: e.tree, id: p}, true
}

// SameShape reports whether e and o have the same variant and, recursively,
// the same shape.
func (e Element) SameShape(o Element) bool {
	return e.tree == o.tree && e.tree.sameShape(e.id, o.id)
}

func (e Element) must(k Kind) *node {
	n := e.node()
	if n.kind != k {
		panic(fmt.Sprintf("goshape: %s method called on %s element", k, n.kind))
	}
	return n
}

// ---- Value ----

// Value returns the payload of a Value element. It panics for other kinds.
func (e Element) Value() Value { return e.must(KindValue).value }

// SetValue replaces the payload of a Value element. The kind of v must
// match the leaf's kind.
func (e Element) SetValue(v Value) error {
	n := e.must(KindValue)
	if v.Kind() != n.value.Kind() {
		return fail(e.tree.pathOf(e.id), CodeTypeMismatch, nil, "expected", n.value.Kind(), "got", v.Kind())
	}
	n.value = v
	return nil
}

// ---- Enum ----

// Options returns the selectable constants of an Enum element.
func (e Element) Options() []EnumOption {
	return append([]EnumOption(nil), e.must(KindEnum).options...)
}

// Selected returns the selected option index of an Enum element.
func (e Element) Selected() int { return e.must(KindEnum).selected }

// Select changes the selected option of an Enum element.
func (e Element) Select(i int) error {
	n := e.must(KindEnum)
	if i < 0 || i >= len(n.options) {
		return fail(e.tree.pathOf(e.id), CodeInvalidEnumIndex, nil, "index", i, "type", n.typ)
	}
	n.selected = i
	return nil
}

// ---- Array ----

// Template returns the element template of an Array element. The template is
// not an item; it describes the shape every item has.
func (e Element) Template() Element {
	return Element{tree: e.tree, id: e.must(KindArray).template}
}

// Len returns the number of items of an Array element or properties of an
// Object element.
func (e Element) Len() int {
	n := e.node()
	switch n.kind {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.props)
	}
	panic(fmt.Sprintf("goshape: Len called on %s element", n.kind))
}

// Item returns the i-th item of an Array element.
func (e Element) Item(i int) Element {
	return Element{tree: e.tree, id: e.must(KindArray).items[i]}
}

// Items returns the items of an Array element in order.
func (e Element) Items() []Element {
	n := e.must(KindArray)
	out := make([]Element, len(n.items))
	for i, id := range n.items {
		out[i] = Element{tree: e.tree, id: id}
	}
	return out
}

// InsertItem inserts a copy of the template at position i and returns it.
func (e Element) InsertItem(i int) (Element, error) {
	n := e.must(KindArray)
	if i < 0 || i > len(n.items) {
		return Element{}, fmt.Errorf("goshape: insert index %d out of range [0, %d]", i, len(n.items))
	}
	item := e.tree.clone(n.template)
	e.insert(i, item)
	return Element{tree: e.tree, id: item}, nil
}

// AppendItem appends a copy of the template and returns it.
func (e Element) AppendItem() (Element, error) {
	return e.InsertItem(len(e.must(KindArray).items))
}

// RemoveItem detaches the i-th item of an Array element and returns it. The
// detached subtree stays valid and can be put back with InsertElement.
func (e Element) RemoveItem(i int) (Element, error) {
	n := e.must(KindArray)
	if i < 0 || i >= len(n.items) {
		return Element{}, fmt.Errorf("goshape: remove index %d out of range [0, %d)", i, len(n.items))
	}
	id := n.items[i]
	n.items = append(n.items[:i:i], n.items[i+1:]...)
	e.tree.nodes[id].parent = noNode
	return Element{tree: e.tree, id: id}, nil
}

// InsertElement inserts a detached element of the same tree at position i.
// The element must have the template's shape.
func (e Element) InsertElement(i int, item Element) error {
	n := e.must(KindArray)
	if i < 0 || i > len(n.items) {
		return fmt.Errorf("goshape: insert index %d out of range [0, %d]", i, len(n.items))
	}
	if item.tree != e.tree || item.id == e.tree.root || item.node().parent != noNode {
		return fmt.Errorf("goshape: element to insert must be a detached element of the same tree")
	}
	if !e.tree.sameShape(n.template, item.id) {
		return fail(e.tree.pathOf(e.id).Index(i), CodeTypeMismatch, nil, "expected", "template shape", "got", item.Kind())
	}
	e.insert(i, item.id)
	return nil
}

func (e Element) insert(i int, item nodeID) {
	n := e.node()
	n.items = append(n.items, noNode)
	copy(n.items[i+1:], n.items[i:])
	n.items[i] = item
	e.tree.nodes[item].parent = e.id
}

// ---- Object ----

// Properties returns the properties of an Object element in order.
func (e Element) Properties() []Property {
	n := e.must(KindObject)
	out := make([]Property, len(n.props))
	for i := range n.props {
		out[i] = Property{tree: e.tree, owner: e.id, slot: i}
	}
	return out
}

// PropertyAt returns the i-th property of an Object element.
func (e Element) PropertyAt(i int) Property {
	n := e.must(KindObject)
	if i < 0 || i >= len(n.props) {
		panic(fmt.Sprintf("goshape: property index %d out of range", i))
	}
	return Property{tree: e.tree, owner: e.id, slot: i}
}

// Property looks up a property by identifier under the tree's identifier
// policy.
func (e Element) Property(ident string) (Property, bool) {
	e.must(KindObject)
	slot, ok := e.tree.findProperty(e.id, ident, -1)
	if !ok {
		return Property{}, false
	}
	return Property{tree: e.tree, owner: e.id, slot: slot}, true
}

// Identifier returns the current identifier of p.
func (p Property) Identifier() string { return p.tree.nodes[p.owner].props[p.slot].ident }

// Value returns the element held by p.
func (p Property) Value() Element {
	return Element{tree: p.tree, id: p.tree.nodes[p.owner].props[p.slot].value}
}

// Owner returns the Object element containing p.
func (p Property) Owner() Element { return Element{tree: p.tree, id: p.owner} }

// Index returns the position of p within its owner.
func (p Property) Index() int { return p.slot }

// Rename changes the identifier of p. See Rename.
func (p Property) Rename(ident string) error { return Rename(p, ident) }

// Lookup returns the element at the JSON Pointer path relative to e. Object
// segments match identifiers under the tree's policy; the array segment "-"
// selects the template.
func (e Element) Lookup(path string) (Element, bool) {
	cur := e
	if path == "" || path == "/" {
		return cur, cur.IsValid()
	}
	if !strings.HasPrefix(path, "/") {
		return Element{}, false
	}
	for _, seg := range strings.Split(path[1:], "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		switch cur.Kind() {
		case KindObject:
			p, ok := cur.Property(seg)
			if !ok {
				return Element{}, false
			}
			cur = p.Value()
		case KindArray:
			if seg == "-" {
				cur = cur.Template()
				continue
			}
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= cur.Len() {
				return Element{}, false
			}
			cur = cur.Item(i)
		default:
			return Element{}, false
		}
	}
	return cur, true
}

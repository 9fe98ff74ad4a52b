package goshape

// Resolver resolves the cross-references of one element against external
// context data. What a reference is and how it resolves belongs to the
// object graph that supplies the context.
type Resolver interface {
	ResolveContext(c any, e Element) error
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(c any, e Element) error

func (f ResolverFunc) ResolveContext(c any, e Element) error { return f(c, e) }

// SetResolver attaches r to e, replacing any previous resolver. A nil r
// detaches it.
func (e Element) SetResolver(r Resolver) { e.node().resolver = r }

// ApplyContext gives every element of the subtree at e the chance to
// resolve its cross-references against c. Elements are visited depth-first,
// children before their parent, and each resolver runs exactly once. Array
// templates are skipped. The first failure stops the walk.
func (e Element) ApplyContext(c any) error {
	return e.tree.walk(e.id, func(id nodeID) error {
		r := e.tree.nodes[id].resolver
		if r == nil {
			return nil
		}
		if err := r.ResolveContext(c, Element{tree: e.tree, id: id}); err != nil {
			return fail(e.tree.pathOf(id), CodeContextResolution, err)
		}
		return nil
	})
}

package hierarchy

import "fmt"

// Forest is an arena of nodes addressed by identifier, with a separate
// ordered list of roots. Nodes never hold pointers to each other.
type Forest struct {
	roots []uint64
	nodes map[uint64]*entry
}

type entry struct {
	parent   uint64 // 0 for roots
	children []uint64
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{nodes: make(map[uint64]*entry)}
}

// FromNodes builds a forest from nested nodes. Nil nodes, zero identifiers and
// duplicates are rejected.
func FromNodes(nodes []*Node) (*Forest, error) {
	f := NewForest()
	for _, n := range nodes {
		if err := f.graft(0, n); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Contains reports whether id is present anywhere in the forest.
func (f *Forest) Contains(id uint64) bool {
	_, ok := f.nodes[id]
	return ok
}

// Roots returns the root identifiers in display order.
func (f *Forest) Roots() []uint64 {
	return append([]uint64(nil), f.roots...)
}

// Children returns the ordered children of id.
func (f *Forest) Children(id uint64) []uint64 {
	e, ok := f.nodes[id]
	if !ok {
		return nil
	}
	return append([]uint64(nil), e.children...)
}

// Parent returns the parent of id; ok is false for roots and unknown ids.
func (f *Forest) Parent(id uint64) (uint64, bool) {
	e, ok := f.nodes[id]
	if !ok || e.parent == 0 {
		return 0, false
	}
	return e.parent, true
}

// Tree materializes the nested view of the forest.
func (f *Forest) Tree() []*Node {
	out := make([]*Node, 0, len(f.roots))
	for _, id := range f.roots {
		out = append(out, f.subtree(id))
	}
	return out
}

// Subtree returns id and its descendants as nested nodes.
func (f *Forest) Subtree(id uint64) (*Node, error) {
	if !f.Contains(id) {
		return nil, &NodeNotFoundError{ID: id}
	}
	return f.subtree(id), nil
}

// SubtreeIDs returns id followed by every descendant in pre-order.
func (f *Forest) SubtreeIDs(id uint64) ([]uint64, error) {
	if !f.Contains(id) {
		return nil, &NodeNotFoundError{ID: id}
	}
	return f.collect(id, nil), nil
}

// IDs returns every identifier of the forest in pre-order.
func (f *Forest) IDs() []uint64 {
	acc := make([]uint64, 0, len(f.nodes))
	for _, id := range f.roots {
		acc = f.collect(id, acc)
	}
	return acc
}

func (f *Forest) subtree(id uint64) *Node {
	e := f.nodes[id]
	n := &Node{ID: id, Children: make([]*Node, 0, len(e.children))}
	for _, child := range e.children {
		n.Children = append(n.Children, f.subtree(child))
	}
	return n
}

func (f *Forest) collect(id uint64, acc []uint64) []uint64 {
	acc = append(acc, id)
	for _, child := range f.nodes[id].children {
		acc = f.collect(child, acc)
	}
	return acc
}

// AppendRoot adds id as the last root.
func (f *Forest) AppendRoot(id uint64) error {
	return f.graft(0, &Node{ID: id})
}

// Graft attaches a detached subtree as the last root. The forest is left
// unchanged when any identifier of the subtree is invalid or already present.
func (f *Forest) Graft(n *Node) error {
	if err := f.checkGraft(n, map[uint64]struct{}{}); err != nil {
		return err
	}
	return f.graft(0, n)
}

func (f *Forest) checkGraft(n *Node, seen map[uint64]struct{}) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidID)
	}
	if n.ID == 0 {
		return ErrInvalidID
	}
	if _, dup := seen[n.ID]; dup || f.Contains(n.ID) {
		return fmt.Errorf("%w: %d", ErrDuplicateID, n.ID)
	}
	seen[n.ID] = struct{}{}
	for _, child := range n.Children {
		if err := f.checkGraft(child, seen); err != nil {
			return err
		}
	}
	return nil
}

func (f *Forest) graft(parent uint64, n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidID)
	}
	if n.ID == 0 {
		return ErrInvalidID
	}
	if f.Contains(n.ID) {
		return fmt.Errorf("%w: %d", ErrDuplicateID, n.ID)
	}

	f.nodes[n.ID] = &entry{parent: parent}
	if parent == 0 {
		f.roots = append(f.roots, n.ID)
	} else {
		p := f.nodes[parent]
		p.children = append(p.children, n.ID)
	}

	for _, child := range n.Children {
		if err := f.graft(n.ID, child); err != nil {
			return err
		}
	}
	return nil
}

// Remove detaches id together with its whole subtree and returns it.
func (f *Forest) Remove(id uint64) (*Node, error) {
	e, ok := f.nodes[id]
	if !ok {
		return nil, &NodeNotFoundError{ID: id}
	}

	removed := f.subtree(id)
	f.unlink(id, e.parent, nil)
	for _, member := range f.collect(id, nil) {
		delete(f.nodes, member)
	}
	return removed, nil
}

// Splice removes id alone; its children take its place, in order, under its parent.
func (f *Forest) Splice(id uint64) error {
	e, ok := f.nodes[id]
	if !ok {
		return &NodeNotFoundError{ID: id}
	}

	for _, child := range e.children {
		f.nodes[child].parent = e.parent
	}
	f.unlink(id, e.parent, e.children)
	delete(f.nodes, id)
	return nil
}

// unlink replaces id in its sibling list with replacement.
func (f *Forest) unlink(id, parent uint64, replacement []uint64) {
	siblings := f.roots
	if parent != 0 {
		siblings = f.nodes[parent].children
	}

	out := make([]uint64, 0, len(siblings)+len(replacement))
	for _, s := range siblings {
		if s == id {
			out = append(out, replacement...)
			continue
		}
		out = append(out, s)
	}

	if parent == 0 {
		f.roots = out
	} else {
		f.nodes[parent].children = out
	}
}

package hierarchy

import "fmt"

// InsertRoot appends id as the last root of the serialized forest.
func InsertRoot(serialized string, id uint64) (string, error) {
	f, err := Decode(serialized)
	if err != nil {
		return "", err
	}
	if err := f.AppendRoot(id); err != nil {
		return "", err
	}
	return Encode(f)
}

// AppendSubtree appends a detached subtree as the last root of the serialized forest.
func AppendSubtree(serialized string, root *Node) (string, error) {
	f, err := Decode(serialized)
	if err != nil {
		return "", err
	}
	if err := f.Graft(root); err != nil {
		return "", err
	}
	return Encode(f)
}

// RemoveNode detaches id and its entire subtree. The children of id are not
// promoted; the caller decides what to do with the returned subtree.
func RemoveNode(serialized string, id uint64) (string, *Node, error) {
	f, err := Decode(serialized)
	if err != nil {
		return "", nil, err
	}
	removed, err := f.Remove(id)
	if err != nil {
		return "", nil, err
	}
	remaining, err := Encode(f)
	if err != nil {
		return "", nil, err
	}
	return remaining, removed, nil
}

// CollectSubtreeIDs returns id plus every descendant identifier, target first.
func CollectSubtreeIDs(serialized string, id uint64) ([]uint64, error) {
	f, err := Decode(serialized)
	if err != nil {
		return nil, err
	}
	return f.SubtreeIDs(id)
}

// IDSet is a set of task identifiers known to exist.
type IDSet map[uint64]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...uint64) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id uint64) bool {
	_, ok := s[id]
	return ok
}

// Reconcile restricts the serialized forest to known identifiers. A node whose
// identifier is unknown is dropped and its surviving children take its place.
// The result is never written back.
func Reconcile(known IDSet, serialized string) ([]*Node, error) {
	f, err := Decode(serialized)
	if err != nil {
		return nil, err
	}
	return restrict(f.Tree(), known), nil
}

func restrict(nodes []*Node, known IDSet) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		children := restrict(n.Children, known)
		if !known.Has(n.ID) {
			out = append(out, children...)
			continue
		}
		out = append(out, &Node{ID: n.ID, Children: children})
	}
	return out
}

// FromFlatOrder discards any previous structure and serializes ids as a
// single sibling sequence. This loses parent/child relations.
func FromFlatOrder(ids []uint64) (string, error) {
	f := NewForest()
	for _, id := range ids {
		if err := f.AppendRoot(id); err != nil {
			return "", err
		}
	}
	return Encode(f)
}

// FromTree serializes a caller-supplied nested ordering.
func FromTree(nodes []*Node) (string, error) {
	f, err := FromNodes(nodes)
	if err != nil {
		return "", err
	}
	return Encode(f)
}

// StrategyKind selects what Detach does with the detached node.
type StrategyKind int

const (
	// StrategyDelete drops the node and its subtree.
	StrategyDelete StrategyKind = iota
	// StrategyReparent drops only the node; its children take its place.
	StrategyReparent
	// StrategyTransfer moves the subtree to the end of another forest.
	StrategyTransfer
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyDelete:
		return "delete"
	case StrategyReparent:
		return "reparent"
	case StrategyTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// Strategy is the disposition of a detached node. Target is only used by StrategyTransfer.
type Strategy struct {
	Kind   StrategyKind
	Target string
}

// Delete drops the detached subtree.
func Delete() Strategy { return Strategy{Kind: StrategyDelete} }

// Reparent promotes the detached node's children into its slot.
func Reparent() Strategy { return Strategy{Kind: StrategyReparent} }

// Transfer grafts the detached subtree as the last root of target.
func Transfer(target string) Strategy { return Strategy{Kind: StrategyTransfer, Target: target} }

// DetachResult holds both forests after a Detach.
type DetachResult struct {
	// Source is the serialized source forest without the detached node.
	Source string
	// Target is the serialized target forest; set only for StrategyTransfer.
	Target string
	// Removed is the detached node as it was in the source forest.
	Removed *Node
	// AffectedIDs are the identifiers that left the source forest.
	AffectedIDs []uint64
}

// Detach removes id from the serialized forest and applies strategy to it.
// Neither input string is modified; on error no result is produced.
func Detach(serialized string, id uint64, strategy Strategy) (DetachResult, error) {
	f, err := Decode(serialized)
	if err != nil {
		return DetachResult{}, err
	}

	removed, err := f.Subtree(id)
	if err != nil {
		return DetachResult{}, err
	}

	result := DetachResult{Removed: removed}

	switch strategy.Kind {
	case StrategyDelete, StrategyTransfer:
		result.AffectedIDs = removed.IDs()
		if _, err := f.Remove(id); err != nil {
			return DetachResult{}, err
		}
	case StrategyReparent:
		result.AffectedIDs = []uint64{id}
		if err := f.Splice(id); err != nil {
			return DetachResult{}, err
		}
	default:
		return DetachResult{}, fmt.Errorf("hierarchy: unknown strategy %v", strategy.Kind)
	}

	if result.Source, err = Encode(f); err != nil {
		return DetachResult{}, err
	}

	if strategy.Kind == StrategyTransfer {
		if result.Target, err = AppendSubtree(strategy.Target, removed); err != nil {
			return DetachResult{}, err
		}
	}
	return result, nil
}

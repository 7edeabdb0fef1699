package hierarchy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// EmptyForest is the serialized form of a forest without nodes.
const EmptyForest = "[]"

var (
	// ErrNodeNotFound is matched by every NodeNotFoundError.
	ErrNodeNotFound = errors.New("hierarchy: node not found")
	// ErrDuplicateID is returned when an identifier would appear twice in one forest.
	ErrDuplicateID = errors.New("hierarchy: duplicate node id")
	// ErrInvalidID is returned for the zero identifier.
	ErrInvalidID = errors.New("hierarchy: node id must be positive")
)

// MalformedHierarchyError reports a serialized forest that cannot be decoded.
type MalformedHierarchyError struct {
	Cause error
}

func (e *MalformedHierarchyError) Error() string {
	return fmt.Sprintf("malformed hierarchy: %v", e.Cause)
}

func (e *MalformedHierarchyError) Unwrap() error {
	return e.Cause
}

// NodeNotFoundError reports an operation on an identifier that is absent from the forest.
type NodeNotFoundError struct {
	ID uint64
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("hierarchy: node %d not found", e.ID)
}

// Is lets callers test with errors.Is(err, ErrNodeNotFound).
func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}

// Node is one task's position in a project's tree.
type Node struct {
	ID       uint64  `json:"id"`
	Children []*Node `json:"children"`
}

// IDs returns n's identifier followed by its descendants in pre-order.
func (n *Node) IDs() []uint64 {
	return NodeIDs([]*Node{n})
}

// NodeIDs returns every identifier of nodes in pre-order. Nil nodes are skipped.
func NodeIDs(nodes []*Node) []uint64 {
	var acc []uint64
	for _, n := range nodes {
		if n == nil {
			continue
		}
		acc = append(acc, n.ID)
		acc = append(acc, NodeIDs(n.Children)...)
	}
	return acc
}

// Decode parses a serialized forest. Blank input and null decode to an empty forest.
func Decode(serialized string) (*Forest, error) {
	trimmed := strings.TrimSpace(serialized)
	if trimmed == "" || trimmed == "null" {
		return NewForest(), nil
	}

	var nodes []*Node
	if err := json.Unmarshal([]byte(trimmed), &nodes); err != nil {
		return nil, &MalformedHierarchyError{Cause: err}
	}

	forest, err := FromNodes(nodes)
	if err != nil {
		return nil, &MalformedHierarchyError{Cause: err}
	}
	return forest, nil
}

// Encode serializes the forest, preserving root and child order.
func Encode(f *Forest) (string, error) {
	if f == nil || len(f.roots) == 0 {
		return EmptyForest, nil
	}
	data, err := json.Marshal(f.Tree())
	if err != nil {
		return "", fmt.Errorf("failed to encode hierarchy: %w", err)
	}
	return string(data), nil
}

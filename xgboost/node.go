package xgboost

import (
	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbin"
)

// Node is one decoded tree node. The stored float is a leaf value for leaves
// and a split threshold otherwise; LeafValue and SplitCond only return it
// under the matching interpretation.
type Node struct {
	parent     int
	leftChild  int
	rightChild int
	sindex     uint32
	value      float32
}

func newNode(rec xgbin.Node) Node {
	return Node{
		parent:     int(rec.Parent),
		leftChild:  int(rec.CLeft),
		rightChild: int(rec.CRight),
		sindex:     rec.SIndex,
		value:      rec.Info,
	}
}

// IsLeaf reports whether the node has no left child.
func (n *Node) IsLeaf() bool { return n.leftChild == int(xgbin.NoChild) }

// Parent returns the parent node id, or -1 for the root.
func (n *Node) Parent() int { return n.parent }

// LeftChild returns the left child id, or -1 for a leaf.
func (n *Node) LeftChild() int { return n.leftChild }

// RightChild returns the right child id, or -1 for a leaf.
func (n *Node) RightChild() int { return n.rightChild }

// SplitIndex returns the feature index tested by the node, without the
// default-direction bit.
func (n *Node) SplitIndex() int { return int(n.sindex & xgbin.SplitIndexMask) }

// DefaultLeft reports whether a missing feature sends the instance left.
func (n *Node) DefaultLeft() bool { return n.sindex&xgbin.DefaultLeftMask != 0 }

// DefaultChild returns the child taken when the split feature is missing.
func (n *Node) DefaultChild() int {
	if n.DefaultLeft() {
		return n.leftChild
	}
	return n.rightChild
}

// LeafValue returns the leaf output. ok is false for internal nodes.
func (n *Node) LeafValue() (value float32, ok bool) {
	if !n.IsLeaf() {
		return 0, false
	}
	return n.value, true
}

// SplitCond returns the split threshold. ok is false for leaves.
func (n *Node) SplitCond() (cond float32, ok bool) {
	if n.IsLeaf() {
		return 0, false
	}
	return n.value, true
}

// Package xgbtest encodes models in the legacy XGBoost binary layout for tests.
//
// Reserved fields and the per-node statistics are filled with non-zero junk so
// that a reader which interprets them instead of skipping them is caught.
package xgbtest

import (
	"encoding/binary"
	"math"

	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbin"
)

const junk uint32 = 0x5a5a5a5a

// NodeSpec describes one encoded node.
type NodeSpec struct {
	Parent int32
	Left   int32
	Right  int32
	SIndex uint32
	Value  float32
}

// Leaf returns a leaf node with the given parent and value.
func Leaf(parent int32, value float32) NodeSpec {
	return NodeSpec{Parent: parent, Left: xgbin.NoChild, Right: xgbin.NoChild, Value: value}
}

// Split returns an internal node testing feature against cond.
func Split(parent, left, right int32, feature uint32, defaultLeft bool, cond float32) NodeSpec {
	sindex := feature & xgbin.SplitIndexMask
	if defaultLeft {
		sindex |= xgbin.DefaultLeftMask
	}
	return NodeSpec{Parent: parent, Left: left, Right: right, SIndex: sindex, Value: cond}
}

// TreeSpec describes one encoded tree. NumNodes is taken from len(Nodes)
// unless OverrideNumNodes is set.
type TreeSpec struct {
	Nodes            []NodeSpec
	NumDeleted       int32
	SizeLeafVector   int32
	LeafVector       []float32
	OverrideNumNodes *int32
}

// ModelSpec describes an encoded model. NumTrees is taken from len(Trees)
// unless OverrideNumTrees is set.
type ModelSpec struct {
	BaseScore        float32
	Objective        string
	Booster          string
	NumFeature       int32
	NumOutputGroup   int32
	Trees            []TreeSpec
	OverrideNumTrees *int32
}

// StumpTree is the three-node tree used throughout the tests: the root splits
// feature 0 at 0.5, the left leaf holds 1.0 and the right leaf 2.0.
func StumpTree(defaultLeft bool) TreeSpec {
	return TreeSpec{Nodes: []NodeSpec{
		Split(xgbin.NoChild, 1, 2, 0, defaultLeft, 0.5),
		Leaf(0, 1.0),
		Leaf(0, 2.0),
	}}
}

// DepthTwoTree splits feature 0 at the root, then feature 1 on the left and
// feature 2 on the right. Leaves are 3, 4, 5, 6 with values 0.3, 0.4, 0.5, 0.6.
func DepthTwoTree() TreeSpec {
	return TreeSpec{Nodes: []NodeSpec{
		Split(xgbin.NoChild, 1, 2, 0, false, 10),
		Split(0, 3, 4, 1, true, 0),
		Split(0, 5, 6, 2, false, -1.5),
		Leaf(1, 0.3),
		Leaf(1, 0.4),
		Leaf(2, 0.5),
		Leaf(2, 0.6),
	}}
}

// SingleTreeModel wraps one tree in a binary:logistic gbtree model.
func SingleTreeModel(tree TreeSpec) ModelSpec {
	return ModelSpec{
		BaseScore:      0.5,
		Objective:      "binary:logistic",
		Booster:        "gbtree",
		NumFeature:     3,
		NumOutputGroup: 1,
		Trees:          []TreeSpec{tree},
	}
}

// Bytes encodes m.
func (m ModelSpec) Bytes() []byte {
	var b []byte

	// LearnerParam
	b = appendFloat32(b, m.BaseScore)
	b = appendJunk(b, xgbin.LearnerParamReservedInt32)

	b = appendName(b, m.Objective)
	b = appendName(b, m.Booster)

	// EnsembleParam
	numTrees := int32(len(m.Trees))
	if m.OverrideNumTrees != nil {
		numTrees = *m.OverrideNumTrees
	}
	b = appendInt32(b, numTrees)
	b = appendInt32(b, int32(junk))
	b = appendInt32(b, m.NumFeature)
	b = appendInt32(b, int32(junk))
	b = binary.LittleEndian.AppendUint64(b, uint64(junk)<<32|uint64(junk))
	b = appendInt32(b, m.NumOutputGroup)
	b = appendJunk(b, xgbin.EnsembleParamReservedInt32)

	for _, t := range m.Trees {
		b = append(b, t.Bytes()...)
	}
	return b
}

// Bytes encodes t.
func (t TreeSpec) Bytes() []byte {
	var b []byte

	numNodes := int32(len(t.Nodes))
	if t.OverrideNumNodes != nil {
		numNodes = *t.OverrideNumNodes
	}
	b = appendInt32(b, 1) // num_roots
	b = appendInt32(b, numNodes)
	b = appendInt32(b, t.NumDeleted)
	b = appendInt32(b, int32(junk))
	b = appendInt32(b, int32(junk))
	b = appendInt32(b, t.SizeLeafVector)
	b = appendJunk(b, xgbin.TreeParamReservedInt32)

	for _, n := range t.Nodes {
		b = appendInt32(b, n.Parent)
		b = appendInt32(b, n.Left)
		b = appendInt32(b, n.Right)
		b = binary.LittleEndian.AppendUint32(b, n.SIndex)
		b = appendFloat32(b, n.Value)
	}

	// loss_chg, sum_hess, base_weight, leaf_child_cnt per node
	b = appendJunk(b, 4*len(t.Nodes))

	if t.SizeLeafVector != 0 {
		b = binary.LittleEndian.AppendUint64(b, uint64(len(t.LeafVector)))
		for _, v := range t.LeafVector {
			b = appendFloat32(b, v)
		}
	}
	return b
}

func appendInt32(b []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}

func appendFloat32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

func appendJunk(b []byte, slots int) []byte {
	for i := 0; i < slots; i++ {
		b = binary.LittleEndian.AppendUint32(b, junk)
	}
	return b
}

func appendName(b []byte, s string) []byte {
	b = binary.LittleEndian.AppendUint64(b, uint64(len(s)))
	return append(b, s...)
}

// Int32 returns a pointer to v, for the Override fields.
func Int32(v int32) *int32 { return &v }

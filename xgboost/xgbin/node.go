package xgbin

import (
	"math"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
)

// Node is the raw 20-byte node record. Info holds the leaf value for leaves
// and the split threshold otherwise; which one is decided by CLeft alone.
type Node struct {
	Parent int32
	CLeft  int32
	CRight int32
	SIndex uint32
	Info   float32
}

// IsLeaf reports whether the node has no left child.
func (n Node) IsLeaf() bool { return n.CLeft == NoChild }

// SplitIndex returns the feature index with the default-direction bit masked off.
func (n Node) SplitIndex() uint32 { return n.SIndex & SplitIndexMask }

// DefaultLeft reports whether missing values go to the left child.
func (n Node) DefaultLeft() bool { return n.SIndex&DefaultLeftMask != 0 }

// ReadNode decodes one node record at off.
func ReadNode(buf []byte, off int) (Node, int, error) {
	if err := checkBounds(buf, off, NodeSize, RecordNode); err != nil {
		return Node{}, 0, err
	}
	c := NewCursor(buf, off, RecordNode)
	n := Node{
		Parent: c.Int32(),
		CLeft:  c.Int32(),
		CRight: c.Int32(),
		SIndex: c.Uint32(),
		Info:   c.Float32(),
	}
	if err := c.Err(); err != nil {
		return Node{}, 0, err
	}
	return n, c.Offset() - off, nil
}

// SkipNodeStats checks that the statistics trailer for numNodes nodes is
// present at off and returns its size.
func SkipNodeStats(buf []byte, off int, numNodes int32) (int, error) {
	avail := Remaining(buf, off)
	if numNodes < 0 || int64(numNodes) > int64(avail/NodeStatSize) {
		return 0, xgbErrors.NewFormatErrorf(RecordNodeStats, off, clampInt64(int64(numNodes)*NodeStatSize), avail,
			"stats for %d nodes exceed buffer", numNodes)
	}
	return SkipAt(buf, off, int(numNodes)*NodeStatSize, RecordNodeStats)
}

func clampInt64(v int64) int {
	if v < 0 {
		return 0
	}
	if v > int64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}

package xgboost

import (
	"context"
	"math"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbin"
)

// rootID is the id of the root node of every tree.
const rootID = 0

// Tree is one decoded regression tree. Node ids are positions in the node
// array, which is in on-disk order.
type Tree struct {
	param      xgbin.TreeParam
	nodes      []Node
	leafVector []float32
	logger     log.Logger
}

// Param returns the tree header.
func (t *Tree) Param() xgbin.TreeParam { return t.param }

// NumNodes returns the number of nodes, including deleted ones.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// Node returns the node with the given id.
func (t *Tree) Node(id int) *Node { return &t.nodes[id] }

// LeafVector returns the optional per-tree leaf vector block. It is nil when
// the tree has none. The returned slice must not be modified.
func (t *Tree) LeafVector() []float32 { return t.leafVector }

// loadTree decodes the tree starting at off and returns the number of bytes
// it occupies: header, nodes, node statistics and the optional leaf vector.
func loadTree(buf []byte, off int, logger log.Logger) (*Tree, int, error) {
	start := off

	param, n, err := xgbin.ReadTreeParam(buf, off)
	if err != nil {
		return nil, 0, err
	}
	off += n
	if param.NumNodes == 0 {
		return nil, 0, xgbErrors.NewFormatErrorf(xgbin.RecordTreeParam, start,
			xgbin.TreeParamSize, xgbin.Remaining(buf, start), "tree has no nodes")
	}
	if logger.Enabled(context.Background(), log.LevelDebug) {
		logger.Debug("tree param",
			log.OffsetKey, start,
			log.NumRootsKey, param.NumRoots,
			log.NumNodesKey, param.NumNodes,
			log.NumDeletedKey, param.NumDeleted,
			log.SizeLeafVectorKey, param.SizeLeafVector,
		)
	}

	// Check the whole node array up front so a huge num_nodes fails before
	// allocating. Compare counts, not byte sizes, so the product cannot wrap.
	if avail := xgbin.Remaining(buf, off); int64(param.NumNodes) > int64(avail/xgbin.NodeSize) {
		return nil, 0, xgbErrors.NewFormatErrorf(xgbin.RecordNode, off,
			clampNeed(int64(param.NumNodes)*xgbin.NodeSize), avail,
			"num_nodes %d exceeds buffer", param.NumNodes)
	}
	nodes := make([]Node, param.NumNodes)
	for i := range nodes {
		rec, n, err := xgbin.ReadNode(buf, off)
		if err != nil {
			return nil, 0, err
		}
		nodes[i] = newNode(rec)
		off += n
	}

	n, err = xgbin.SkipNodeStats(buf, off, param.NumNodes)
	if err != nil {
		return nil, 0, err
	}
	off += n

	var leafVector []float32
	if param.SizeLeafVector != 0 {
		leafVector, n, err = xgbin.ReadLeafVector(buf, off)
		if err != nil {
			return nil, 0, err
		}
		logger.Debug("leaf vector", log.OffsetKey, off, log.SizeKey, len(leafVector))
		off += n
	}

	if err := validateChildren(nodes, start); err != nil {
		return nil, 0, err
	}

	return &Tree{
		param:      param,
		nodes:      nodes,
		leafVector: leafVector,
		logger:     logger,
	}, off - start, nil
}

// validateChildren checks that every internal node points at two existing
// nodes and that no node is reachable twice from the root, so traversal of a
// loaded tree stays in range and always ends at a leaf.
func validateChildren(nodes []Node, treeOffset int) error {
	nodeOffset := func(id int) int {
		return treeOffset + xgbin.TreeParamSize + id*xgbin.NodeSize
	}
	for id := range nodes {
		nd := &nodes[id]
		if nd.IsLeaf() {
			continue
		}
		if nd.leftChild < 0 || nd.leftChild >= len(nodes) || nd.rightChild < 0 || nd.rightChild >= len(nodes) {
			return xgbErrors.NewFormatErrorf(xgbin.RecordNode, nodeOffset(id), xgbin.NodeSize, xgbin.NodeSize,
				"node %d has children (%d, %d) outside [0, %d)", id, nd.leftChild, nd.rightChild, len(nodes))
		}
	}

	visited := make([]bool, len(nodes))
	visited[rootID] = true
	stack := []int{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &nodes[id]
		if nd.IsLeaf() {
			continue
		}
		for _, child := range [2]int{nd.leftChild, nd.rightChild} {
			if visited[child] {
				return xgbErrors.NewFormatErrorf(xgbin.RecordNode, nodeOffset(id), xgbin.NodeSize, xgbin.NodeSize,
					"node %d links to node %d, which is already reachable from the root", id, child)
			}
			visited[child] = true
			stack = append(stack, child)
		}
	}
	return nil
}

// clampNeed converts a byte count to int for error reporting.
func clampNeed(n int64) int {
	if n > int64(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

// LeafIndex walks the tree from the root and returns the id of the leaf fv
// falls into. A missing split feature follows the node's default direction;
// otherwise values strictly below the threshold go left.
func (t *Tree) LeafIndex(fv Features) int {
	debug := t.logger != nil && t.logger.Enabled(context.Background(), log.LevelDebug)

	nid := rootID
	for !t.nodes[nid].IsLeaf() {
		nid = t.next(nid, fv, debug)
	}
	return nid
}

func (t *Tree) next(nid int, fv Features, debug bool) int {
	nd := &t.nodes[nid]
	idx := nd.SplitIndex()

	if fv.IsMissing(idx) {
		next := nd.DefaultChild()
		if debug {
			dir := log.DirectionDefaultRight
			if nd.DefaultLeft() {
				dir = log.DirectionDefaultLeft
			}
			t.logger.Debug("missing feature", log.NodeIDKey, nid, log.SplitIndexKey, idx, log.DirectionKey, dir)
		}
		return next
	}

	fvalue := fv.FValue(idx)
	cond := float64(nd.value)
	if fvalue < cond {
		if debug {
			t.logger.Debug("split", log.NodeIDKey, nid, log.SplitIndexKey, idx,
				log.FValueKey, fvalue, log.SplitCondKey, cond, log.DirectionKey, log.DirectionLeft)
		}
		return nd.leftChild
	}
	if debug {
		t.logger.Debug("split", log.NodeIDKey, nid, log.SplitIndexKey, idx,
			log.FValueKey, fvalue, log.SplitCondKey, cond, log.DirectionKey, log.DirectionRight)
	}
	return nd.rightChild
}

// LeafValue returns the value of the leaf fv falls into.
func (t *Tree) LeafValue(fv Features) float32 {
	return t.nodes[t.LeafIndex(fv)].value
}

package xgboost_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
	"github.com/YuminosukeSato/xgbleaf/xgboost"
	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbtest"
)

func loadSpec(t *testing.T, spec xgbtest.ModelSpec, opts ...xgboost.Option) *xgboost.Model {
	t.Helper()
	m, err := xgboost.Load(spec.Bytes(), opts...)
	require.NoError(t, err)
	return m
}

func fvec(t *testing.T, pairs map[int]float64) *xgboost.FVec {
	t.Helper()
	fv := xgboost.NewFVec(len(pairs))
	for idx, v := range pairs {
		fv.Set(idx, v)
	}
	return fv
}

func requireFormatError(t *testing.T, err error) *xgbErrors.FormatError {
	t.Helper()
	require.Error(t, err)
	var formatErr *xgbErrors.FormatError
	require.True(t, xgbErrors.As(err, &formatErr), "expected FormatError, got %T: %v", err, err)
	return formatErr
}

func TestLoad_Header(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.StumpTree(false))
	spec.NumFeature = 7
	spec.NumOutputGroup = 2
	spec.BaseScore = 0.25
	spec.Objective = "reg:squarederror"

	m := loadSpec(t, spec)

	assert.Equal(t, 7, m.NumFeature())
	assert.Equal(t, 2, m.NumOutputGroup())
	assert.Equal(t, float32(0.25), m.GlobalBias())
	assert.Equal(t, "reg:squarederror", m.Objective())
	assert.Equal(t, "gbtree", m.Booster())
	assert.Equal(t, 1, m.NumTrees())
	assert.Len(t, m.Trees(), 1)
	assert.Equal(t, 3, m.Tree(0).NumNodes())
}

func TestPredict_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		defaultLeft bool
		features    map[int]float64
		wantLeaf    int
		wantValue   float32
	}{
		{"below threshold goes left", false, map[int]float64{0: 0.3}, 1, 1.0},
		{"missing follows default left", true, map[int]float64{}, 1, 1.0},
		{"missing follows default right", false, map[int]float64{}, 2, 2.0},
		{"equal to threshold goes right", false, map[int]float64{0: 0.5}, 2, 2.0},
		{"above threshold goes right", true, map[int]float64{0: 0.9}, 2, 2.0},
		{"unrelated feature is ignored", false, map[int]float64{1: -100}, 2, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.StumpTree(tt.defaultLeft)))
			fv := fvec(t, tt.features)

			assert.Equal(t, []int{tt.wantLeaf}, m.PredictLeafIndices(fv))
			assert.Equal(t, []float32{tt.wantValue}, m.PredictValues(fv))
		})
	}
}

func TestPredict_DepthTwo(t *testing.T) {
	m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.DepthTwoTree()))

	tests := []struct {
		name     string
		features map[int]float64
		want     int
	}{
		{"left then default left", map[int]float64{0: 5}, 3},
		{"left then equal goes right", map[int]float64{0: 1, 1: 0}, 4},
		{"left then below goes left", map[int]float64{0: 1, 1: -0.1}, 3},
		{"right then below goes left", map[int]float64{0: 20, 2: -2}, 5},
		{"right at threshold then right", map[int]float64{0: 10, 2: -1.5}, 6},
		{"all missing", map[int]float64{}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := m.Tree(0).LeafIndex(fvec(t, tt.features))
			assert.Equal(t, tt.want, leaf)
			assert.True(t, m.Tree(0).Node(leaf).IsLeaf())
		})
	}
}

func TestPredict_TreeOrder(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.StumpTree(false))
	spec.Trees = append(spec.Trees, xgbtest.DepthTwoTree(), xgbtest.StumpTree(true))
	m := loadSpec(t, spec)

	fv := fvec(t, map[int]float64{0: 0.1})
	assert.Equal(t, []int{1, 3, 1}, m.PredictLeafIndices(fv))
	assert.Equal(t, []float32{1.0, 0.3, 1.0}, m.PredictValues(fv))
}

func TestPredict_SingleLeafTree(t *testing.T) {
	tree := xgbtest.TreeSpec{Nodes: []xgbtest.NodeSpec{xgbtest.Leaf(-1, 0.75)}}
	m := loadSpec(t, xgbtest.SingleTreeModel(tree))

	for _, features := range []map[int]float64{{}, {0: 1}, {0: -1, 5: 3}} {
		fv := fvec(t, features)
		assert.Equal(t, []int{0}, m.PredictLeafIndices(fv))
		assert.Equal(t, []float32{0.75}, m.PredictValues(fv))
	}
}

func TestPredict_Idempotent(t *testing.T) {
	m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.DepthTwoTree()))
	fv := fvec(t, map[int]float64{0: 20, 2: -3})

	first := m.PredictLeafIndices(fv)
	second := m.PredictLeafIndices(fv)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, fv.Len())
}

func TestPredict_ZeroTrees(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.StumpTree(false))
	spec.Trees = nil
	m := loadSpec(t, spec)

	assert.Equal(t, 0, m.NumTrees())
	assert.Empty(t, m.PredictLeafIndices(xgboost.NewFVec(0)))
	assert.Empty(t, m.PredictValues(xgboost.NewFVec(0)))
}

func TestPredictLeafInst(t *testing.T) {
	m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.DepthTwoTree()))

	leaves, err := m.PredictLeafInst([]int{0, 2}, []float64{20, -2})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, leaves)

	_, err = m.PredictLeafInst([]int{0, 2}, []float64{20})
	var dimErr *xgbErrors.DimensionError
	require.True(t, xgbErrors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)
}

func TestPredict_Concurrent(t *testing.T) {
	m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.DepthTwoTree()))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			fv := xgboost.NewFVec(2)
			for i := 0; i < 100; i++ {
				fv.Reset()
				fv.Set(0, float64(g*5))
				fv.Set(2, -2)
				want := 5
				if g < 2 {
					want = 3
				}
				assert.Equal(t, []int{want}, m.PredictLeafIndices(fv))
			}
		}(g)
	}
	wg.Wait()
}

func TestLoad_ExactConsumption(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.DepthTwoTree())
	spec.Trees = append(spec.Trees, xgbtest.TreeSpec{
		Nodes:          xgbtest.StumpTree(false).Nodes,
		SizeLeafVector: 1,
		LeafVector:     []float32{0.1, 0.2, 0.3},
	})
	buf := spec.Bytes()

	_, n, err := xgboost.LoadPrefix(append(buf, 0xde, 0xad, 0xbe, 0xef))
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
}

func TestLoad_TrailingBytes(t *testing.T) {
	buf := append(xgbtest.SingleTreeModel(xgbtest.StumpTree(false)).Bytes(), 1, 2, 3)

	t.Run("lenient", func(t *testing.T) {
		logger, _ := log.NewTestLogger(log.LevelWarn)
		m, err := xgboost.Load(buf, xgboost.WithLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, 1, m.NumTrees())
		assert.True(t, logger.ContainsMessage("trailing bytes after last tree"))
		assert.True(t, logger.ContainsField(log.TrailingBytesKey, float64(3)))
	})

	t.Run("strict", func(t *testing.T) {
		_, err := xgboost.Load(buf, xgboost.WithStrict(true))
		formatErr := requireFormatError(t, err)
		assert.Equal(t, len(buf)-3, formatErr.Offset)
		assert.Equal(t, 3, formatErr.Available)
	})
}

func TestLoad_TruncatedAtEveryOffset(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.DepthTwoTree())
	spec.Trees = append(spec.Trees, xgbtest.TreeSpec{
		Nodes:          xgbtest.StumpTree(true).Nodes,
		SizeLeafVector: 1,
		LeafVector:     []float32{1, 2},
	})
	buf := spec.Bytes()

	for i := 0; i < len(buf); i++ {
		var err error
		require.NotPanics(t, func() {
			_, err = xgboost.Load(buf[:i])
		}, "prefix of %d bytes", i)
		requireFormatError(t, err)
	}
}

func TestLoad_LeafVector(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.TreeSpec{
		Nodes:          xgbtest.StumpTree(false).Nodes,
		SizeLeafVector: 2,
		LeafVector:     []float32{0.5, -0.5},
	})
	spec.Trees = append(spec.Trees, xgbtest.StumpTree(true))
	m := loadSpec(t, spec)

	require.Equal(t, 2, m.NumTrees())
	assert.Equal(t, []float32{0.5, -0.5}, m.Tree(0).LeafVector())
	assert.Nil(t, m.Tree(1).LeafVector())
	assert.Equal(t, int32(2), m.Tree(0).Param().SizeLeafVector)
	assert.Equal(t, []int{2, 1}, m.PredictLeafIndices(xgboost.NewFVec(0)))
}

func TestLoad_InvalidTrees(t *testing.T) {
	split := xgbtest.StumpTree(false).Nodes

	tests := []struct {
		name   string
		spec   xgbtest.ModelSpec
		record string
	}{
		{
			name:   "zero nodes",
			spec:   xgbtest.SingleTreeModel(xgbtest.TreeSpec{OverrideNumNodes: xgbtest.Int32(0)}),
			record: "TreeParam",
		},
		{
			name:   "negative nodes",
			spec:   xgbtest.SingleTreeModel(xgbtest.TreeSpec{OverrideNumNodes: xgbtest.Int32(-3)}),
			record: "TreeParam",
		},
		{
			name: "child out of range",
			spec: xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: []xgbtest.NodeSpec{
				xgbtest.Split(-1, 1, 5, 0, false, 0.5), split[1], split[2],
			}}),
			record: "Node",
		},
		{
			name: "negative right child",
			spec: xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: []xgbtest.NodeSpec{
				xgbtest.Split(-1, 1, -7, 0, false, 0.5), split[1], split[2],
			}}),
			record: "Node",
		},
		{
			name:   "node count exceeds buffer",
			spec:   xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: split, OverrideNumNodes: xgbtest.Int32(1 << 30)}),
			record: "Node",
		},
		{
			name:   "max node count",
			spec:   xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: split, OverrideNumNodes: xgbtest.Int32(math.MaxInt32)}),
			record: "Node",
		},
		{
			name: "child points back at root",
			spec: xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: []xgbtest.NodeSpec{
				xgbtest.Split(-1, 1, 0, 0, false, 0.5), xgbtest.Leaf(0, 1.0),
			}}),
			record: "Node",
		},
		{
			name: "grandchild points back at root",
			spec: xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: []xgbtest.NodeSpec{
				xgbtest.Split(-1, 1, 2, 0, false, 10),
				xgbtest.Leaf(0, 0.3),
				xgbtest.Split(0, 3, 0, 2, false, -1.5),
				xgbtest.Leaf(2, 0.5),
			}}),
			record: "Node",
		},
		{
			name: "both children share a node",
			spec: xgbtest.SingleTreeModel(xgbtest.TreeSpec{Nodes: []xgbtest.NodeSpec{
				xgbtest.Split(-1, 1, 1, 0, false, 0.5), xgbtest.Leaf(0, 1.0), xgbtest.Leaf(0, 2.0),
			}}),
			record: "Node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xgboost.Load(tt.spec.Bytes())
			formatErr := requireFormatError(t, err)
			assert.Equal(t, tt.record, formatErr.Record)
			assert.Contains(t, err.Error(), "tree 0")
		})
	}
}

func TestLoad_InvalidTreeCount(t *testing.T) {
	tests := []struct {
		name     string
		numTrees int32
	}{
		{"negative", -1},
		{"larger than buffer", 1000},
		{"one more than encoded", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := xgbtest.SingleTreeModel(xgbtest.StumpTree(false))
			spec.OverrideNumTrees = xgbtest.Int32(tt.numTrees)
			_, err := xgboost.Load(spec.Bytes())
			requireFormatError(t, err)
		})
	}
}

func TestLoad_NonASCIIName(t *testing.T) {
	spec := xgbtest.SingleTreeModel(xgbtest.StumpTree(false))
	spec.Booster = "gb\xe9tree"

	_, err := xgboost.Load(spec.Bytes())
	require.Error(t, err)
	var decodeErr *xgbErrors.DecodeError
	require.True(t, xgbErrors.As(err, &decodeErr), "expected DecodeError, got %T", err)
	assert.Equal(t, "booster", decodeErr.Field)
	assert.Equal(t, 2, decodeErr.Pos)
	assert.Equal(t, byte(0xe9), decodeErr.Byte)
}

func TestLoad_Logging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.StumpTree(false)), xgboost.WithLogger(logger))

	assert.True(t, logger.ContainsMessage("ensemble param"))
	assert.True(t, logger.ContainsMessage("tree param"))
	assert.True(t, logger.ContainsField(log.ObjectiveKey, "binary:logistic"))
	assert.True(t, logger.ContainsField(log.NumNodesKey, float64(3)))
	assert.True(t, logger.ContainsMessage("model loaded"))

	logger.Clear()
	m.PredictLeafIndices(xgboost.NewFVec(0))
	assert.True(t, logger.ContainsField(log.DirectionKey, log.DirectionDefaultRight))

	logger.Clear()
	m.PredictLeafIndices(fvec(t, map[int]float64{0: 0.1}))
	assert.True(t, logger.ContainsField(log.DirectionKey, log.DirectionLeft))
	assert.True(t, logger.ContainsField(log.TreeIndexKey, float64(0)))
}

func TestLoad_ErrorLogged(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelError)
	_, err := xgboost.Load([]byte{1, 2, 3}, xgboost.WithLogger(logger))
	requireFormatError(t, err)
	assert.True(t, logger.ContainsMessage("failed to load model"))
}

func TestModel_WithLogger(t *testing.T) {
	m := loadSpec(t, xgbtest.SingleTreeModel(xgbtest.StumpTree(false)))
	logger, _ := log.NewTestLogger(log.LevelDebug)

	logged := m.WithLogger(logger)
	assert.Equal(t, m.PredictLeafIndices(xgboost.NewFVec(0)), logged.PredictLeafIndices(xgboost.NewFVec(0)))
	assert.True(t, logger.ContainsMessage("missing feature"))
}

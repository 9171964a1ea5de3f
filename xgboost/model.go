package xgboost

import (
	"context"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbin"
)

// Model is a decoded gradient-boosted tree ensemble. It is immutable and safe
// for concurrent use; each goroutine needs its own Features.
type Model struct {
	numFeature     int
	numOutputGroup int
	globalBias     float32
	objective      string
	booster        string
	trees          []*Tree
	logger         log.Logger
}

// NumFeature returns num_feature from the ensemble header.
func (m *Model) NumFeature() int { return m.numFeature }

// NumOutputGroup returns num_output_group from the ensemble header.
func (m *Model) NumOutputGroup() int { return m.numOutputGroup }

// GlobalBias returns base_score from the learner header.
func (m *Model) GlobalBias() float32 { return m.globalBias }

// Objective returns the objective name, e.g. "binary:logistic".
func (m *Model) Objective() string { return m.objective }

// Booster returns the booster name, e.g. "gbtree".
func (m *Model) Booster() string { return m.booster }

// NumTrees returns the number of trees.
func (m *Model) NumTrees() int { return len(m.trees) }

// Tree returns the i-th tree in prediction order.
func (m *Model) Tree(i int) *Tree { return m.trees[i] }

// Trees returns a copy of the tree list in prediction order.
func (m *Model) Trees() []*Tree {
	out := make([]*Tree, len(m.trees))
	copy(out, m.trees)
	return out
}

// Load decodes a whole model buffer. Bytes after the last tree are logged and
// ignored, or rejected with WithStrict(true).
func Load(buf []byte, opts ...Option) (*Model, error) {
	cfg := newLoadConfig(opts)
	m, n, err := loadModel(buf, cfg)
	if err != nil {
		cfg.logger.Error("failed to load model", err, log.OperationKey, log.OperationLoad)
		return nil, err
	}
	if trailing := len(buf) - n; trailing > 0 {
		if cfg.strict {
			err := xgbErrors.NewFormatErrorf("Model", n, 0, trailing, "%d trailing bytes after last tree", trailing)
			cfg.logger.Error("failed to load model", err, log.OperationKey, log.OperationLoad)
			return nil, err
		}
		cfg.logger.Warn("trailing bytes after last tree", log.OffsetKey, n, log.TrailingBytesKey, trailing)
	}
	return m, nil
}

// LoadPrefix decodes a model from the start of buf and returns the number of
// bytes it occupies. Anything after that is left to the caller.
func LoadPrefix(buf []byte, opts ...Option) (*Model, int, error) {
	cfg := newLoadConfig(opts)
	m, n, err := loadModel(buf, cfg)
	if err != nil {
		cfg.logger.Error("failed to load model", err, log.OperationKey, log.OperationLoad)
		return nil, 0, err
	}
	return m, n, nil
}

func loadModel(buf []byte, cfg loadConfig) (*Model, int, error) {
	logger := cfg.logger.With(log.ComponentKey, "loader")
	off := 0

	learner, n, err := xgbin.ReadLearnerParam(buf, off)
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("learner param", log.OffsetKey, off, log.BaseScoreKey, learner.BaseScore)
	off += n

	objective, n, err := xgbin.ReadName(buf, off, "objective")
	if err != nil {
		return nil, 0, err
	}
	off += n

	booster, n, err := xgbin.ReadName(buf, off, "booster")
	if err != nil {
		return nil, 0, err
	}
	off += n
	logger.Debug("names", log.ObjectiveKey, objective, log.BoosterKey, booster)

	ensemble, n, err := xgbin.ReadEnsembleParam(buf, off)
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("ensemble param",
		log.OffsetKey, off,
		log.NumTreesKey, ensemble.NumTrees,
		log.NumFeatureKey, ensemble.NumFeature,
		log.NumOutputGroupKey, ensemble.NumOutputGroup,
	)
	off += n

	// Every tree needs at least a header; reject counts the buffer cannot hold
	// before allocating.
	if int(ensemble.NumTrees) > xgbin.Remaining(buf, off)/xgbin.TreeParamSize {
		return nil, 0, xgbErrors.NewFormatErrorf(xgbin.RecordEnsembleParam, off-n,
			int(ensemble.NumTrees)*xgbin.TreeParamSize, xgbin.Remaining(buf, off),
			"num_trees %d exceeds buffer", ensemble.NumTrees)
	}

	trees := make([]*Tree, 0, ensemble.NumTrees)
	for i := 0; i < int(ensemble.NumTrees); i++ {
		treeLogger := cfg.logger.With(log.TreeIndexKey, i)
		tree, n, err := loadTree(buf, off, treeLogger)
		if err != nil {
			return nil, 0, xgbErrors.Wrapf(err, "tree %d", i)
		}
		if logger.Enabled(context.Background(), log.LevelDebug) {
			logger.Debug("tree loaded", log.TreeIndexKey, i, log.OffsetKey, off, log.SizeKey, n)
		}
		trees = append(trees, tree)
		off += n
	}

	logger.Info("model loaded",
		log.ObjectiveKey, objective,
		log.BoosterKey, booster,
		log.NumTreesKey, len(trees),
		log.NumFeatureKey, ensemble.NumFeature,
		log.SizeKey, off,
	)

	return &Model{
		numFeature:     int(ensemble.NumFeature),
		numOutputGroup: int(ensemble.NumOutputGroup),
		globalBias:     learner.BaseScore,
		objective:      objective,
		booster:        booster,
		trees:          trees,
		logger:         cfg.logger,
	}, off, nil
}

// PredictLeafIndices returns, for every tree in order, the id of the leaf fv
// falls into.
func (m *Model) PredictLeafIndices(fv Features) []int {
	preds := make([]int, len(m.trees))
	for i, tree := range m.trees {
		preds[i] = tree.LeafIndex(fv)
	}
	return preds
}

// PredictValues returns, for every tree in order, the value of the leaf fv
// falls into. The values are not summed or transformed.
func (m *Model) PredictValues(fv Features) []float32 {
	preds := make([]float32, len(m.trees))
	for i, tree := range m.trees {
		preds[i] = tree.LeafValue(fv)
	}
	return preds
}

// PredictLeafInst builds a feature vector from parallel index/value slices and
// returns PredictLeafIndices for it.
func (m *Model) PredictLeafInst(indices []int, values []float64) ([]int, error) {
	fv := NewFVec(len(indices))
	if err := fv.Fill(indices, values); err != nil {
		return nil, err
	}
	return m.PredictLeafIndices(fv), nil
}

// WithLogger returns a shallow copy of m whose traversal logs to logger. The
// trees are shared.
func (m *Model) WithLogger(logger log.Logger) *Model {
	logger = log.OrNop(logger)
	cp := *m
	cp.logger = logger
	cp.trees = make([]*Tree, len(m.trees))
	for i, t := range m.trees {
		tc := *t
		tc.logger = logger.With(log.TreeIndexKey, i)
		cp.trees[i] = &tc
	}
	return &cp
}

package xgboost

import (
	"math"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xgbleaf/core"
	"github.com/YuminosukeSato/xgbleaf/core/parallel"
	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
)

// DefaultParallelThreshold is the row count at or below which a batch is
// predicted on the calling goroutine.
const DefaultParallelThreshold = 256

var _ core.LeafPredictor = (*Predictor)(nil)

// Predictor runs a Model over batches of instances, splitting rows across
// goroutines. It is safe for concurrent use.
type Predictor struct {
	model     *Model
	workers   int
	threshold int
	logger    log.Logger
}

// PredictorOption configures NewPredictor.
type PredictorOption func(*Predictor)

// WithNumWorkers sets the number of goroutines used for large batches.
// 0 means runtime.NumCPU().
func WithNumWorkers(n int) PredictorOption {
	return func(p *Predictor) {
		p.workers = n
	}
}

// WithParallelThreshold sets the batch size at or below which rows are
// predicted sequentially.
func WithParallelThreshold(rows int) PredictorOption {
	return func(p *Predictor) {
		p.threshold = rows
	}
}

// NewPredictor returns a batch predictor for m.
func NewPredictor(m *Model, opts ...PredictorOption) (*Predictor, error) {
	if m == nil {
		return nil, xgbErrors.NewValidationError("model", "must not be nil", nil)
	}
	p := &Predictor{
		model:     m,
		threshold: DefaultParallelThreshold,
		logger:    m.logger.With(log.ComponentKey, "predictor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 0 {
		return nil, xgbErrors.NewValidationError("workers", "must be >= 0", p.workers)
	}
	if p.threshold < 0 {
		return nil, xgbErrors.NewValidationError("parallel_threshold", "must be >= 0", p.threshold)
	}
	if p.workers == 0 {
		p.workers = runtime.NumCPU()
	}
	return p, nil
}

// Model returns the underlying model.
func (p *Predictor) Model() *Model { return p.model }

// denseRow exposes one matrix row as Features. NaN cells and columns past the
// end of the row are missing.
type denseRow struct {
	x   mat.Matrix
	row int
	n   int
}

func (d *denseRow) IsMissing(idx int) bool {
	return idx < 0 || idx >= d.n || math.IsNaN(d.x.At(d.row, idx))
}

func (d *denseRow) FValue(idx int) float64 {
	return d.x.At(d.row, idx)
}

// Predict is PredictLeafMatrix.
func (p *Predictor) Predict(X mat.Matrix) (mat.Matrix, error) {
	return p.PredictLeafMatrix(X)
}

// PredictLeafMatrix returns a rows x trees matrix of leaf ids. NaN entries of
// X are missing features.
func (p *Predictor) PredictLeafMatrix(X mat.Matrix) (*mat.Dense, error) {
	return p.predictMatrix(X, "Predictor.PredictLeafMatrix", func(t *Tree, fv Features) float64 {
		return float64(t.LeafIndex(fv))
	})
}

// PredictValueMatrix returns a rows x trees matrix of leaf values.
func (p *Predictor) PredictValueMatrix(X mat.Matrix) (*mat.Dense, error) {
	return p.predictMatrix(X, "Predictor.PredictValueMatrix", func(t *Tree, fv Features) float64 {
		return float64(t.LeafValue(fv))
	})
}

func (p *Predictor) predictMatrix(X mat.Matrix, op string, eval func(*Tree, Features) float64) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, xgbErrors.NewDimensionError(op, 1, 0, 0)
	}
	if nf := p.model.NumFeature(); nf > 0 && c != nf {
		return nil, xgbErrors.NewDimensionError(op, nf, c, 1)
	}
	trees := p.model.trees
	if len(trees) == 0 {
		return nil, xgbErrors.NewValidationError("model", "has no trees", 0)
	}

	out := mat.NewDense(r, len(trees), nil)
	p.logger.Debug("batch predict", log.OperationKey, op, log.SamplesKey, r, log.WorkersKey, p.workers)

	err := parallel.ParallelizeWithThreshold(r, p.threshold, p.workers, func(start, end int) (err error) {
		defer xgbErrors.Recover(&err, op)
		row := &denseRow{x: X, n: c}
		for i := start; i < end; i++ {
			row.row = i
			for j, t := range trees {
				out.Set(i, j, eval(t, row))
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("batch predict failed", err, log.OperationKey, op)
		return nil, err
	}
	return out, nil
}

// PredictLeafBatch returns PredictLeafIndices for every instance, in order.
func (p *Predictor) PredictLeafBatch(instances []Instance) ([][]int, error) {
	const op = "Predictor.PredictLeafBatch"
	out := make([][]int, len(instances))
	p.logger.Debug("batch predict", log.OperationKey, op, log.SamplesKey, len(instances), log.WorkersKey, p.workers)

	err := parallel.ParallelizeWithThreshold(len(instances), p.threshold, p.workers, func(start, end int) (err error) {
		defer xgbErrors.Recover(&err, op)
		fv := NewFVec(0)
		for i := start; i < end; i++ {
			fv.Reset()
			if err := fv.Fill(instances[i].Indices, instances[i].Values); err != nil {
				return xgbErrors.Wrapf(err, "instance %d", i)
			}
			out[i] = p.model.PredictLeafIndices(fv)
		}
		return nil
	})
	if err != nil {
		p.logger.Error("batch predict failed", err, log.OperationKey, op)
		return nil, err
	}
	return out, nil
}

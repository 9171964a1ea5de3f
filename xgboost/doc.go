/*
Package xgboost reads gradient-boosted tree ensembles stored in the legacy
XGBoost binary model format and predicts, for a sparse feature vector, the
leaf each tree routes it to.

The format is a fixed sequence of little-endian records: a learner header
holding the global bias, the objective and booster names, an ensemble
header with the tree count, then each tree as a header, its node array, one
statistics record per node and an optional leaf-vector block. Reserved
fields and statistics are skipped.

Basic usage:

	model, err := xgboost.LoadFile("model.bin")
	if err != nil {
		return err
	}

	fv := xgboost.NewFVec(2)
	fv.Set(0, 0.3)
	fv.Set(4, 1.7)

	leaves := model.PredictLeafIndices(fv) // one leaf id per tree
	values := model.PredictValues(fv)      // the matching leaf values

Features absent from the vector are missing and follow each split's default
direction. Present values strictly below a split's threshold go left.

A Model is immutable after Load and may be shared across goroutines. For
batches, Predictor splits rows across workers and accepts gonum matrices in
which NaN marks a missing feature:

	p, err := xgboost.NewPredictor(model, xgboost.WithNumWorkers(4))
	leafIDs, err := p.PredictLeafMatrix(X) // rows x trees

Decoding failures are reported as *errors.FormatError (truncated or
inconsistent records) or *errors.DecodeError (non-ASCII names) from
github.com/YuminosukeSato/xgbleaf/pkg/errors, recoverable with errors.As
through any wrapping.
*/
package xgboost

// Package xgbleaf reads gradient-boosted tree models saved in the legacy
// XGBoost binary format and reports, for each input instance, which leaf of
// every tree the instance lands in.
//
// Leaf indices are commonly used as learned categorical features: one-hot
// encoded, they feed a downstream linear model or serve as a compact
// embedding of the instance. xgbleaf produces them in pure Go without linking
// the XGBoost C library.
//
// # Packages
//
//   - xgboost: model loading (Load, LoadFile), the sparse feature vector FVec,
//     per-tree traversal and the batch Predictor over gonum matrices.
//   - xgboost/xgbin: bounds-checked decoders for the fixed-size records of
//     the binary format.
//   - xgboost/xgbtest: encoders that build binary models for tests.
//   - pkg/errors: FormatError, DecodeError and the other typed errors, with
//     stack traces from github.com/cockroachdb/errors.
//   - pkg/log: the Logger interface with slog and zerolog adapters.
//   - cmd/xgbleaf: command-line driver reading libsvm-style instances.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/xgbleaf/xgboost"
//	)
//
//	func main() {
//	    model, err := xgboost.LoadFile("model.bin")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    leaves, err := model.PredictLeafInst([]int{0, 3}, []float64{1.5, -0.2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(leaves)
//	}
//
// # Error Handling
//
// Load never panics on malformed input. Every failure is a typed error that
// can be inspected with errors.As:
//
//	var formatErr *errors.FormatError
//	if errors.As(err, &formatErr) {
//	    fmt.Println(formatErr.Record, formatErr.Offset)
//	}
package xgbleaf

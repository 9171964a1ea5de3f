// Package core は予測器の共通インターフェースを定義します。
package core

import "gonum.org/v1/gonum/mat"

// Predictor は行列入力に対して予測を行うインターフェース
type Predictor interface {
	// Predict は入力データの各行に対する予測を返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// LeafPredictor は各行が各木でどの葉に到達するかを返すインターフェース
type LeafPredictor interface {
	Predictor

	// PredictLeafMatrix は行 = サンプル、列 = 木の葉ID行列を返す
	PredictLeafMatrix(X mat.Matrix) (*mat.Dense, error)

	// PredictValueMatrix は行 = サンプル、列 = 木の葉の値行列を返す
	PredictValueMatrix(X mat.Matrix) (*mat.Dense, error)
}

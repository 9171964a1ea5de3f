package log

// Model context.
const (
	// ComponentKey identifies the package or stage emitting the record.
	// Examples: "loader", "predictor", "cli"
	ComponentKey = "xgb.component"

	// OperationKey names the operation being performed.
	OperationKey = "xgb.operation"

	// ObjectiveKey is the objective name decoded from the model header.
	ObjectiveKey = "model.objective"

	// BoosterKey is the booster name decoded from the model header.
	BoosterKey = "model.booster"

	// BaseScoreKey is the global bias stored in LearnerParam.
	BaseScoreKey = "model.base_score"

	// NumTreesKey, NumFeatureKey and NumOutputGroupKey mirror EnsembleParam.
	NumTreesKey       = "model.num_trees"
	NumFeatureKey     = "model.num_feature"
	NumOutputGroupKey = "model.num_output_group"
)

// Binary format context.
const (
	// RecordKey names the fixed-size record being decoded.
	RecordKey = "format.record"

	// OffsetKey is the byte offset of the record within the buffer.
	OffsetKey = "format.offset"

	// SizeKey is the number of bytes a record or block consumed.
	SizeKey = "format.size"

	// PathKey is the model file path, when loading from disk.
	PathKey = "format.path"

	// TrailingBytesKey counts bytes left over after the last tree.
	TrailingBytesKey = "format.trailing_bytes"
)

// Tree and traversal context.
const (
	TreeIndexKey      = "tree.index"
	NumRootsKey       = "tree.num_roots"
	NumNodesKey       = "tree.num_nodes"
	NumDeletedKey     = "tree.num_deleted"
	SizeLeafVectorKey = "tree.size_leaf_vector"

	NodeIDKey     = "node.id"
	SplitIndexKey = "node.split_index"
	SplitCondKey  = "node.split_cond"
	FValueKey     = "node.fvalue"
	DirectionKey  = "node.direction"
)

// Prediction context.
const (
	// SamplesKey is the number of instances in a batch.
	SamplesKey = "data.samples"

	// WorkersKey is the number of workers used for a batch.
	WorkersKey = "data.workers"

	// LineKey is the 1-based input line number of an instance.
	LineKey = "data.line"
)

// Standard values for DirectionKey.
const (
	DirectionLeft         = "left"
	DirectionRight        = "right"
	DirectionDefaultLeft  = "default_left"
	DirectionDefaultRight = "default_right"
)

// Standard values for OperationKey.
const (
	OperationLoad    = "load"
	OperationPredict = "predict"
)

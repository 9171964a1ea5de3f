// Package xgbin decodes the fixed-size records of the legacy XGBoost binary
// model layout.
//
// Every multi-byte scalar is little-endian. Each reader takes the whole model
// buffer and an absolute offset, and returns the decoded record together with
// the number of bytes it consumed, so callers can chain records by adding
// sizes. Reserved fields are consumed but never surfaced.
package xgbin

// Record names used in FormatError and DecodeError.
const (
	RecordLearnerParam  = "LearnerParam"
	RecordEnsembleParam = "EnsembleParam"
	RecordTreeParam     = "TreeParam"
	RecordNode          = "Node"
	RecordNodeStats     = "NodeStats"
	RecordLeafVector    = "LeafVector"
	RecordName          = "Name"
)

// Reserved padding, counted in 32-bit slots.
const (
	LearnerParamReservedInt32  = 33
	EnsembleParamReservedInt32 = 33
	TreeParamReservedInt32     = 31
)

const (
	int32Size   = 4
	uint32Size  = 4
	float32Size = 4
	int64Size   = 8
	uint64Size  = 8
)

// Fixed record sizes in bytes.
const (
	// float32 base_score + reserved.
	LearnerParamSize = float32Size + LearnerParamReservedInt32*int32Size

	// int32 num_trees, int32, int32 num_feature, int32, int64, int32 num_output_group.
	ensembleParamFieldsSize = 5*int32Size + int64Size
	EnsembleParamSize       = ensembleParamFieldsSize + EnsembleParamReservedInt32*int32Size

	// int32 num_roots, num_nodes, num_deleted, two reserved, size_leaf_vector.
	treeParamFieldsSize = 6 * int32Size
	TreeParamSize       = treeParamFieldsSize + TreeParamReservedInt32*int32Size

	// int32 parent, cleft, cright; uint32 sindex; float32 info.
	NodeSize = 3*int32Size + uint32Size + float32Size

	// Per-node statistics trailer: float32 loss_chg, sum_hess, base_weight; int32 leaf_child_cnt.
	NodeStatSize = 3*float32Size + int32Size

	// Length prefix of name strings and the leaf-vector block.
	LengthPrefixSize = uint64Size
)

// Split index packing.
const (
	// DefaultLeftMask is bit 31 of the packed split index.
	DefaultLeftMask uint32 = 1 << 31

	// SplitIndexMask selects the feature index in bits 0-30.
	SplitIndexMask uint32 = DefaultLeftMask - 1
)

// NoChild marks an absent child (and the root's parent).
const NoChild int32 = -1

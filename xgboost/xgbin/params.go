package xgbin

import (
	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
)

// LearnerParam is the learner-level header of the model.
type LearnerParam struct {
	BaseScore float32
}

// ReadLearnerParam decodes the LearnerParam record at off. It always consumes
// LearnerParamSize bytes on success.
func ReadLearnerParam(buf []byte, off int) (LearnerParam, int, error) {
	if err := checkBounds(buf, off, LearnerParamSize, RecordLearnerParam); err != nil {
		return LearnerParam{}, 0, err
	}
	c := NewCursor(buf, off, RecordLearnerParam)
	p := LearnerParam{BaseScore: c.Float32()}
	c.Skip(LearnerParamReservedInt32 * int32Size)
	if err := c.Err(); err != nil {
		return LearnerParam{}, 0, err
	}
	return p, c.Offset() - off, nil
}

// EnsembleParam is the gradient booster header. Only the counts needed for
// prediction are surfaced; the reserved fields are consumed for alignment.
type EnsembleParam struct {
	NumTrees       int32
	NumFeature     int32
	NumOutputGroup int32
}

// ReadEnsembleParam decodes the EnsembleParam record at off. It always
// consumes EnsembleParamSize bytes on success.
func ReadEnsembleParam(buf []byte, off int) (EnsembleParam, int, error) {
	if err := checkBounds(buf, off, EnsembleParamSize, RecordEnsembleParam); err != nil {
		return EnsembleParam{}, 0, err
	}
	c := NewCursor(buf, off, RecordEnsembleParam)
	var p EnsembleParam
	p.NumTrees = c.Int32()
	_ = c.Int32() // reserved
	p.NumFeature = c.Int32()
	_ = c.Int32() // reserved
	_ = c.Int64() // reserved
	p.NumOutputGroup = c.Int32()
	c.Skip(EnsembleParamReservedInt32 * int32Size)
	if err := c.Err(); err != nil {
		return EnsembleParam{}, 0, err
	}
	if p.NumTrees < 0 {
		return EnsembleParam{}, 0, xgbErrors.NewFormatErrorf(RecordEnsembleParam, off,
			EnsembleParamSize, Remaining(buf, off), "negative num_trees %d", p.NumTrees)
	}
	return p, c.Offset() - off, nil
}

// TreeParam is the per-tree header.
type TreeParam struct {
	NumRoots       int32
	NumNodes       int32
	NumDeleted     int32
	SizeLeafVector int32
}

// ReadTreeParam decodes the TreeParam record at off. It always consumes
// TreeParamSize bytes on success. A negative num_nodes is a FormatError.
func ReadTreeParam(buf []byte, off int) (TreeParam, int, error) {
	if err := checkBounds(buf, off, TreeParamSize, RecordTreeParam); err != nil {
		return TreeParam{}, 0, err
	}
	c := NewCursor(buf, off, RecordTreeParam)
	var p TreeParam
	p.NumRoots = c.Int32()
	p.NumNodes = c.Int32()
	p.NumDeleted = c.Int32()
	_ = c.Int32() // reserved
	_ = c.Int32() // reserved
	p.SizeLeafVector = c.Int32()
	c.Skip(TreeParamReservedInt32 * int32Size)
	if err := c.Err(); err != nil {
		return TreeParam{}, 0, err
	}
	if p.NumNodes < 0 {
		return TreeParam{}, 0, xgbErrors.NewFormatErrorf(RecordTreeParam, off,
			TreeParamSize, Remaining(buf, off), "negative num_nodes %d", p.NumNodes)
	}
	return p, c.Offset() - off, nil
}

package xgboost

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

// Instance is one sparse input row: a label followed by index/value pairs.
// The label is kept verbatim; prediction does not use it.
type Instance struct {
	Label   string
	Indices []int
	Values  []float64
}

// FVec returns the instance as a feature vector.
func (in Instance) FVec() (*FVec, error) {
	fv := NewFVec(len(in.Indices))
	if err := fv.Fill(in.Indices, in.Values); err != nil {
		return nil, err
	}
	return fv, nil
}

// InstanceReader reads libsvm-style lines of the form
//
//	label idx:val idx:val ...
//
// Blank lines and lines starting with '#' are skipped.
type InstanceReader struct {
	sc   *bufio.Scanner
	line int
}

// NewInstanceReader returns an InstanceReader reading from r.
func NewInstanceReader(r io.Reader) *InstanceReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &InstanceReader{sc: sc}
}

// Line returns the 1-based number of the last line read.
func (r *InstanceReader) Line() int { return r.line }

// Read returns the next instance, or io.EOF when the input is exhausted.
func (r *InstanceReader) Read() (Instance, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return parseInstance(text, r.line)
	}
	if err := r.sc.Err(); err != nil {
		return Instance{}, xgbErrors.Wrapf(err, "read instance after line %d", r.line)
	}
	return Instance{}, io.EOF
}

// ReadAll reads every remaining instance.
func (r *InstanceReader) ReadAll() ([]Instance, error) {
	var out []Instance
	for {
		in, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
}

func parseInstance(text string, line int) (Instance, error) {
	fields := strings.Fields(text)
	in := Instance{
		Label:   fields[0],
		Indices: make([]int, 0, len(fields)-1),
		Values:  make([]float64, 0, len(fields)-1),
	}
	for _, tok := range fields[1:] {
		is, vs, ok := strings.Cut(tok, ":")
		if !ok {
			return Instance{}, xgbErrors.NewValidationError("instance",
				fmt.Sprintf("line %d: expected idx:val", line), tok)
		}
		idx, err := strconv.Atoi(is)
		if err != nil || idx < 0 {
			return Instance{}, xgbErrors.NewValidationError("instance",
				fmt.Sprintf("line %d: bad feature index", line), tok)
		}
		val, err := strconv.ParseFloat(vs, 64)
		if err != nil {
			return Instance{}, xgbErrors.NewValidationError("instance",
				fmt.Sprintf("line %d: bad feature value", line), tok)
		}
		in.Indices = append(in.Indices, idx)
		in.Values = append(in.Values, val)
	}
	return in, nil
}

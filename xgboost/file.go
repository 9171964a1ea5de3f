package xgboost

import (
	"os"

	"github.com/edsrzf/mmap-go"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbin"
)

// LoadFile maps the model file at path read-only and decodes it with Load.
// The mapping is released before LoadFile returns; the Model holds no
// reference to it.
func LoadFile(path string, opts ...Option) (m *Model, err error) {
	cfg := newLoadConfig(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, xgbErrors.Wrapf(err, "open model %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, xgbErrors.Wrapf(err, "stat model %s", path)
	}
	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return nil, xgbErrors.NewFormatError(xgbin.RecordLearnerParam, 0, xgbin.LearnerParamSize, 0)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, xgbErrors.Wrapf(err, "mmap model %s", path)
	}
	defer func() {
		if uerr := data.Unmap(); uerr != nil && err == nil {
			m, err = nil, xgbErrors.Wrapf(uerr, "unmap model %s", path)
		}
	}()

	cfg.logger.Debug("model file mapped", log.SizeKey, len(data), log.PathKey, path)
	return Load(data, opts...)
}

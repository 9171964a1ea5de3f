package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/xgboost/xgbtest"
)

func writeModel(t *testing.T) string {
	t.Helper()
	spec := xgbtest.SingleTreeModel(xgbtest.DepthTwoTree())
	spec.Trees = append(spec.Trees, xgbtest.StumpTree(true))
	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(path, spec.Bytes(), 0o600))
	return path
}

const input = "1 0:5\n0 0:20 2:-2\n1\n"

func TestRun_Leaves(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-model", writeModel(t)}, strings.NewReader(input), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "3 2\n5 2\n6 1\n", stdout.String())
}

func TestRun_Values(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-model", writeModel(t), "-values"}, strings.NewReader(input), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "0.3 2\n0.5 2\n0.6 1\n", stdout.String())
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte(input), 0o600))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-model", writeModel(t), "-input", in, "-output", out, "-log-level", "info"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "3 2\n5 2\n6 1\n", string(got))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "model loaded")
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing model flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(nil, strings.NewReader(""), &stdout, &stderr)
		var valErr *xgbErrors.ValidationError
		require.True(t, xgbErrors.As(err, &valErr))
		assert.Equal(t, "model", valErr.ParamName)
	})

	t.Run("bad log level", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"-model", "x", "-log-level", "loud"}, strings.NewReader(""), &stdout, &stderr)
		var valErr *xgbErrors.ValidationError
		require.True(t, xgbErrors.As(err, &valErr))
		assert.Equal(t, "log-level", valErr.ParamName)
	})

	t.Run("malformed input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"-model", writeModel(t)}, strings.NewReader("1 0:5\n1 bogus\n"), &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

// Command xgbleaf loads a legacy binary XGBoost model and prints, for every
// input instance, the leaf each tree routes it to.
//
// Input is libsvm-style text, one instance per line:
//
//	label idx:val idx:val ...
//
// Output is one line per instance with one space-separated leaf id per tree,
// or the leaf values with -values.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
	"github.com/YuminosukeSato/xgbleaf/pkg/log"
	"github.com/YuminosukeSato/xgbleaf/xgboost"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	model    string
	input    string
	output   string
	values   bool
	strict   bool
	workers  int
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("xgbleaf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.model, "model", "", "Path to the binary model file (required)")
	fs.StringVar(&cfg.input, "input", "-", "Instance file in libsvm format, - for stdin")
	fs.StringVar(&cfg.output, "output", "-", "Output file, - for stdout")
	fs.BoolVar(&cfg.values, "values", false, "Print leaf values instead of leaf ids")
	fs.BoolVar(&cfg.strict, "strict", false, "Reject trailing bytes after the last tree")
	fs.IntVar(&cfg.workers, "workers", 0, "Prediction workers, 0 for one per CPU")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.model == "" {
		fs.Usage()
		return cfg, xgbErrors.NewValidationError("model", "must be specified", cfg.model)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, xgbErrors.NewValidationError("log-level", err.Error(), level)
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(log.ToZerologLevel(lvl)).
		With().Timestamp().Logger()
	return log.NewZerologLogger(zl).With(log.ComponentKey, "cli"), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger, err := newLogger(stderr, cfg.logLevel)
	if err != nil {
		return err
	}

	model, err := xgboost.LoadFile(cfg.model, xgboost.WithLogger(logger), xgboost.WithStrict(cfg.strict))
	if err != nil {
		return err
	}

	in := stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return xgbErrors.Wrapf(err, "open input %s", cfg.input)
		}
		defer f.Close()
		in = f
	}
	instances, err := xgboost.NewInstanceReader(in).ReadAll()
	if err != nil {
		return err
	}
	logger.Info("instances read", log.SamplesKey, len(instances))

	out := stdout
	if cfg.output != "-" {
		f, err := os.Create(cfg.output)
		if err != nil {
			return xgbErrors.Wrapf(err, "create output %s", cfg.output)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)

	if cfg.values {
		err = writeValues(w, model, instances)
	} else {
		err = writeLeaves(w, model, instances, cfg.workers)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

func writeLeaves(w io.Writer, model *xgboost.Model, instances []xgboost.Instance, workers int) error {
	p, err := xgboost.NewPredictor(model, xgboost.WithNumWorkers(workers))
	if err != nil {
		return err
	}
	leaves, err := p.PredictLeafBatch(instances)
	if err != nil {
		return err
	}
	fields := make([]string, model.NumTrees())
	for _, row := range leaves {
		for j, id := range row {
			fields[j] = strconv.Itoa(id)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeValues(w io.Writer, model *xgboost.Model, instances []xgboost.Instance) error {
	fields := make([]string, model.NumTrees())
	for i, inst := range instances {
		fv, err := inst.FVec()
		if err != nil {
			return xgbErrors.Wrapf(err, "instance %d", i)
		}
		for j, v := range model.PredictValues(fv) {
			fields[j] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}

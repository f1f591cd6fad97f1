package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"schemadiff/core/change"
	"schemadiff/core/config"
	"schemadiff/core/diff"
	"schemadiff/core/logger"
	"schemadiff/core/omf"
	"schemadiff/core/preview"
	"schemadiff/core/value"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// env is what every command needs: configuration and a logger.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func setup() (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &env{cfg: cfg, logger: l}, nil
}

// engine builds a diff engine from the configured defaults overridden by
// key=value pairs given on the command line.
func (e *env) engine(pairs []string) (*diff.Engine, error) {
	opts, err := parseOptions(pairs)
	if err != nil {
		return nil, err
	}
	policy, err := omf.NewNormalized(e.cfg.Compare.Options().Merge(opts))
	if err != nil {
		return nil, err
	}
	return diff.New(policy, diff.WithLogger(e.logger)), nil
}

func parseOptions(pairs []string) (omf.Options, error) {
	opts := omf.Options{}
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", omf.ErrInvalidOption, p)
		}
		opts[key] = val
	}
	return opts, nil
}

func readDocument(path string) (value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := value.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// writeChange renders c in the requested format.
func writeChange(w io.Writer, c change.Change, format string, tree bool) error {
	switch format {
	case formatText:
		if change.IsEmpty(c) {
			_, err := fmt.Fprintln(w, "no changes")
			return err
		}
		return change.Dump(w, c)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(preview.Build(c, tree))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(preview.Build(c, tree)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

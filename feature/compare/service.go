package compare

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"schemadiff/core/diff"
	"schemadiff/core/metrics"
	"schemadiff/core/omf"
	"schemadiff/core/preview"
	"schemadiff/core/value"

	"go.uber.org/zap"
)

// ErrBadDocument is returned for documents that cannot be decoded.
var ErrBadDocument = errors.New("bad document")

// Request is the body of POST /compare.
type Request struct {
	Source  json.RawMessage `json:"source" swaggertype:"object"`
	Target  json.RawMessage `json:"target" swaggertype:"object"`
	Options omf.Options     `json:"options,omitempty"`
	// Tree adds the full change tree to the response.
	Tree bool `json:"tree,omitempty"`
}

// Service compares documents.
type Service struct {
	defaults omf.Options
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

// NewService creates a compare service. Request options override defaults.
func NewService(defaults omf.Options, logger *zap.Logger, recorder *metrics.Recorder) *Service {
	return &Service{defaults: defaults, logger: logger, metrics: recorder}
}

// Compare decodes both documents and diffs them.
func (s *Service) Compare(req Request) (*preview.Report, error) {
	source, err := decode("source", req.Source)
	if err != nil {
		return nil, err
	}
	target, err := decode("target", req.Target)
	if err != nil {
		return nil, err
	}

	policy, err := omf.NewNormalized(s.defaults.Merge(req.Options))
	if err != nil {
		return nil, err
	}

	engine := diff.New(policy, diff.WithLogger(s.logger), diff.WithMetrics(s.metrics))
	c, err := engine.Diff(source, target)
	if err != nil {
		return nil, err
	}

	report := preview.Build(c, req.Tree)
	return &report, nil
}

func decode(side string, raw json.RawMessage) (value.Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: %s is missing", ErrBadDocument, side)
	}
	v, err := value.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadDocument, side, err)
	}
	return v, nil
}

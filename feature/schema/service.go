package schema

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schemadiff/core/catalog"
	"schemadiff/core/diff"
	"schemadiff/core/metrics"
	"schemadiff/core/model"
	"schemadiff/core/omf"
	"schemadiff/core/preview"
	"schemadiff/core/storage"
	"schemadiff/core/value"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by live operations when no database is configured.
var ErrNoDatabase = errors.New("database is not configured")

// SnapshotInfo describes a captured snapshot.
type SnapshotInfo struct {
	Schema   string    `json:"schema"`
	Snapshot string    `json:"snapshot"`
	Tables   int       `json:"tables"`
	Routines int       `json:"routines"`
	Captured time.Time `json:"captured"`
}

// Service captures and compares schemas.
type Service struct {
	schemas  *catalog.Cache
	client   storage.Client
	bucket   string
	defaults omf.Options
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

// NewService creates a schema service. db may be nil, in which case only
// snapshot to snapshot comparison is available.
func NewService(db *gorm.DB, cacheTTL time.Duration, client storage.Client, bucket string, defaults omf.Options, logger *zap.Logger, recorder *metrics.Recorder) *Service {
	s := &Service{
		client:   client,
		bucket:   bucket,
		defaults: defaults,
		logger:   logger,
		metrics:  recorder,
	}
	if db != nil {
		s.schemas = catalog.NewCache(catalog.NewInspector(db).LoadSchema, cacheTTL)
	}
	return s
}

func (s *Service) live(ctx context.Context, name string) (*value.Object, error) {
	if s.schemas == nil {
		return nil, ErrNoDatabase
	}
	return s.schemas.Get(ctx, name)
}

// Capture reads the live schema, bypassing the cache, and stores it as snapshot.
func (s *Service) Capture(ctx context.Context, name, snapshot string) (*SnapshotInfo, error) {
	if _, err := storage.SnapshotObject(snapshot); err != nil {
		return nil, err
	}
	if s.schemas != nil {
		s.schemas.Invalidate(name)
	}
	graph, err := s.live(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket); err != nil {
		return nil, err
	}
	if err := storage.SaveSnapshot(ctx, s.client, s.bucket, snapshot, graph); err != nil {
		return nil, err
	}

	info := &SnapshotInfo{
		Schema:   name,
		Snapshot: snapshot,
		Tables:   listLen(graph, model.AttrTables),
		Routines: listLen(graph, model.AttrRoutines),
		Captured: time.Now().UTC(),
	}
	s.logger.Info("Snapshot captured",
		zap.String("schema", name),
		zap.String("snapshot", snapshot),
		zap.Int("tables", info.Tables))
	return info, nil
}

// Snapshots lists stored snapshot names.
func (s *Service) Snapshots(ctx context.Context) ([]string, error) {
	names, err := storage.ListSnapshots(ctx, s.client, s.bucket)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// DiffLive compares a snapshot (source) against the live schema (target).
func (s *Service) DiffLive(ctx context.Context, name, snapshot string, opts omf.Options, tree bool) (*preview.Report, error) {
	engine, err := s.engine(opts)
	if err != nil {
		return nil, err
	}
	source, err := storage.LoadSnapshot(ctx, s.client, s.bucket, snapshot)
	if err != nil {
		return nil, err
	}
	target, err := s.live(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.compare(engine, source, target, tree)
}

// DiffSnapshots compares two stored snapshots.
func (s *Service) DiffSnapshots(ctx context.Context, from, to string, opts omf.Options, tree bool) (*preview.Report, error) {
	engine, err := s.engine(opts)
	if err != nil {
		return nil, err
	}
	source, err := storage.LoadSnapshot(ctx, s.client, s.bucket, from)
	if err != nil {
		return nil, err
	}
	target, err := storage.LoadSnapshot(ctx, s.client, s.bucket, to)
	if err != nil {
		return nil, err
	}
	return s.compare(engine, source, target, tree)
}

func (s *Service) engine(opts omf.Options) (*diff.Engine, error) {
	policy, err := omf.NewNormalized(s.defaults.Merge(opts))
	if err != nil {
		return nil, err
	}
	return diff.New(policy, diff.WithLogger(s.logger), diff.WithMetrics(s.metrics)), nil
}

func (s *Service) compare(engine *diff.Engine, source, target value.Value, tree bool) (*preview.Report, error) {
	c, err := engine.Diff(source, target)
	if err != nil {
		return nil, fmt.Errorf("failed to compare schemas: %w", err)
	}
	report := preview.Build(c, tree)
	return &report, nil
}

func listLen(o *value.Object, attr string) int {
	v, _ := o.Get(attr)
	if l, ok := v.(*value.List); ok {
		return l.Len()
	}
	return 0
}

package breeding

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/config"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/punnett"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/traits"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type metricsRecorder interface {
	Observe(ctx context.Context, op string, success bool, duration time.Duration)
	GenesSkipped(n int)
	CombosTruncated()
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}
func (noopMetrics) GenesSkipped(int)                                      {}
func (noopMetrics) CombosTruncated()                                      {}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// engine binds every registry-dependent component to one registry so a
// registry swap replaces them together.
type engine struct {
	dict       *genedict.Registry
	segmenter  *traits.Segmenter
	classifier *traits.Classifier
	builder    *punnett.Builder
	calc       *punnett.Calculator
}

func newEngine(dict *genedict.Registry, opts punnett.Options) *engine {
	return &engine{
		dict:       dict,
		segmenter:  traits.NewSegmenter(dict),
		classifier: traits.NewClassifier(dict),
		builder:    punnett.NewBuilder(dict, opts),
		calc:       punnett.NewCalculator(dict, opts),
	}
}

const (
	defaultBatchWorkers  = 4
	defaultMaxBatchPairs = 256
	defaultMaxTextLength = 4096
)

// Service exposes trait parsing and pairing odds.
type Service struct {
	log     *slog.Logger
	cfg     config.GeneticsConfig
	opts    punnett.Options
	engine  atomic.Pointer[engine]
	metrics metricsRecorder
}

// NewService creates a breeding service over dict. A nil dict uses the
// built-in registry.
func NewService(logger *slog.Logger, dict *genedict.Registry, cfg config.GeneticsConfig) *Service {
	if dict == nil {
		dict = genedict.Default()
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = defaultBatchWorkers
	}
	if cfg.MaxBatchPairs <= 0 {
		cfg.MaxBatchPairs = defaultMaxBatchPairs
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = defaultMaxTextLength
	}
	s := &Service{
		log: logger.With("service", "breeding"),
		cfg: cfg,
		opts: punnett.Options{
			CertainHetThreshold:    cfg.CertainHetThreshold,
			NoiseFloor:             cfg.NoiseFloor,
			ComboCap:               cfg.ComboCap,
			MaxCombined:            cfg.MaxCombined,
			SignificantProbability: cfg.SignificantProbability,
		},
		metrics: noopMetrics{},
	}
	s.engine.Store(newEngine(dict, s.opts))
	return s
}

// SetMetrics injects the optional metrics recorder.
func (s *Service) SetMetrics(m metricsRecorder) {
	if m != nil {
		s.metrics = m
	}
}

// SetRegistry publishes a new gene registry. Calls already running keep
// the registry they started with.
func (s *Service) SetRegistry(dict *genedict.Registry) {
	if dict == nil {
		return
	}
	s.engine.Store(newEngine(dict, s.opts))
	s.log.Info("gene registry updated", slog.Int("genes", dict.Len()))
}

// Registry returns the registry currently in use.
func (s *Service) Registry() *genedict.Registry {
	return s.engine.Load().dict
}

// Genes lists the dictionary genes currently known.
func (s *Service) Genes() []genedict.Entry {
	return s.engine.Load().dict.Entries()
}

// GeneCount returns the number of canonical genes in the active registry.
func (s *Service) GeneCount() int {
	return s.engine.Load().dict.Len()
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
}

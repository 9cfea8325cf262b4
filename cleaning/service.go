package cleaning

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options tunes one transfer run. Zero fields fall back to the service
// defaults; StartOffset resumes a halted run from its preserved cursor.
type Options struct {
	BatchSize   int
	BatchDelay  time.Duration
	Retry       Policy
	StartOffset int
}

func (o Options) merged(def Options) Options {
	if o.BatchSize <= 0 {
		o.BatchSize = def.BatchSize
	}
	if o.BatchDelay == 0 {
		o.BatchDelay = def.BatchDelay
	}
	if o.Retry.MaxAttempts <= 0 {
		o.Retry = def.Retry
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 1000
	}
	return o
}

// Service is the reconciliation engine: one read-only handle on Source,
// one read-write handle on Target, and the run defaults from
// configuration. It carries no other state; concurrent runs over
// overlapping order ranges must be serialized by the operator.
type Service struct {
	source   *SourceStore
	target   *TargetStore
	logger   *logrus.Logger
	defaults Options
}

func NewService(sourceDB, targetDB *gorm.DB, logger *logrus.Logger, defaults Options) *Service {
	if defaults.Retry.MaxAttempts <= 0 {
		defaults.Retry = DefaultPolicy()
	}
	if defaults.BatchSize <= 0 {
		defaults.BatchSize = 1000
	}
	return &Service{
		source:   NewSourceStore(sourceDB),
		target:   NewTargetStore(targetDB),
		logger:   logger,
		defaults: defaults,
	}
}

// Source exposes the Source reader, mainly for adapters that need raw
// counts.
func (s *Service) Source() *SourceStore { return s.source }

// Target exposes the Target store.
func (s *Service) Target() *TargetStore { return s.target }

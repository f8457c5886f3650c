// Package pipeline runs every tier in parallel and assembles the run report.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/pagecluster/internal/domain"
	domdoc "github.com/kailas-cloud/pagecluster/internal/domain/document"
	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
	domtier "github.com/kailas-cloud/pagecluster/internal/domain/tier"
	"github.com/kailas-cloud/pagecluster/internal/logger"
)

// Input is the loaded renderer pool.
type Input struct {
	Tiers    map[string][]domdoc.Document
	Rejected []skip.Rejection
}

// Service runs tiers concurrently. Tiers share nothing except the skip log.
type Service struct {
	tiers       TierProcessor
	skips       SkipLog
	concurrency int
	recorder    Recorder
	now         func() time.Time
	newID       func() string
}

// New creates a pipeline service. concurrency <= 0 means one worker per CPU.
func New(tiers TierProcessor, skips SkipLog, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Service{
		tiers:       tiers,
		skips:       skips,
		concurrency: concurrency,
		recorder:    nopRecorder{},
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithClock overrides the run clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Run clusters every tier and returns the report. A failed tier is reported
// in its Result and never affects the others.
func (s *Service) Run(ctx context.Context, in Input) Report {
	log := logger.FromContext(ctx)
	started := s.now()
	report := Report{RunID: s.newID(), StartedAt: started.UTC()}

	for _, rj := range in.Rejected {
		s.skips.Append(skip.NewRecord(s.now(), rj.Tier, rj.Filename, rj.Err))
		s.recorder.DocumentProcessed(rj.Tier, "skipped")
		s.recorder.DocumentSkipped(rj.Tier, skip.Class(rj.Err))
	}

	names := make([]string, 0, len(in.Tiers))
	for name := range in.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)

	log.Info("run started",
		zap.String("run_id", report.RunID),
		zap.Int("tiers", len(names)),
		zap.Int("rejected", len(in.Rejected)),
	)

	results := make([]domtier.Result, len(names))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			results[i] = s.runTier(ctx, name, in.Tiers[name])
			return nil
		})
	}
	_ = g.Wait()

	report.Tiers = results
	report.Skipped = s.skips.Records()
	report.Duration = s.now().Sub(started)
	s.recorder.RunFinished(report.Duration)

	log.Info("run finished",
		zap.String("run_id", report.RunID),
		zap.Int("tiers", len(results)),
		zap.Int("clustered", report.Clustered()),
		zap.Int("clusters", report.ClusterCount()),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed_tiers", len(report.Failed())),
		zap.Duration("duration", report.Duration),
	)
	return report
}

func (s *Service) runTier(ctx context.Context, name string, docs []domdoc.Document) (res domtier.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = domtier.Result{
				Name:      name,
				Documents: len(docs),
				Err:       fmt.Errorf("tier %s: panic: %v: %w", name, r, domain.ErrTierFailed),
			}
		}
	}()
	return s.tiers.Process(ctx, name, docs)
}

type nopRecorder struct{}

func (nopRecorder) DocumentProcessed(string, string) {}
func (nopRecorder) DocumentSkipped(string, string)   {}
func (nopRecorder) RunFinished(time.Duration)        {}

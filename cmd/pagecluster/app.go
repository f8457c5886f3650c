package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagecluster/internal/config"
	"github.com/kailas-cloud/pagecluster/internal/db"
	"github.com/kailas-cloud/pagecluster/internal/domain/cluster"
	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
	"github.com/kailas-cloud/pagecluster/internal/domain/text"
	logpkg "github.com/kailas-cloud/pagecluster/internal/logger"
	"github.com/kailas-cloud/pagecluster/internal/metrics"
	"github.com/kailas-cloud/pagecluster/internal/repository/loader"
	"github.com/kailas-cloud/pagecluster/internal/repository/result"
	"github.com/kailas-cloud/pagecluster/internal/repository/screenshot"
	healthuc "github.com/kailas-cloud/pagecluster/internal/usecase/health"
	pipelineuc "github.com/kailas-cloud/pagecluster/internal/usecase/pipeline"
	tieruc "github.com/kailas-cloud/pagecluster/internal/usecase/tier"
)

// app is the composition root of one clustering run.
type app struct {
	loader   *loader.Loader
	pipeline *pipelineuc.Service
	files    *result.FileWriter
	runs     *result.Store // nil without a store
	health   *healthuc.Service
}

func newApp(cfg config.Config, fs afs.Service, store db.Store, m *metrics.Pipeline) (*app, error) {
	params, err := clusterParams(cfg.Clustering)
	if err != nil {
		return nil, err
	}
	weighting, err := text.ParseWeighting(cfg.Clustering.Weighting)
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}

	pool := loader.New(fs, cfg.Input.URL).WithScreenshotBase(cfg.Input.ScreenshotBase)
	skips := skip.NewLog()

	tiers := tieruc.New(screenshot.New(fs), skips, params).
		WithWeighting(weighting).
		WithDecodeWorkers(cfg.Workers.Decode).
		WithRecorder(m)
	runner := pipelineuc.New(tiers, skips, cfg.Workers.Tiers).
		WithRecorder(m)

	a := &app{
		loader:   pool,
		pipeline: runner,
		files:    result.NewFileWriter(fs, cfg.Output.Dir, cfg.Output.ClustersFile, cfg.Output.ErrorLogFile),
	}

	// A nil db.Store must reach health.New as a nil interface.
	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
		a.runs = result.NewStore(store, cfg.Store.KeyPrefix, storeTTL(cfg.Store))
	}
	a.health = healthuc.New(pinger, pool)
	return a, nil
}

func clusterParams(cfg config.ClusteringConfig) (cluster.Params, error) {
	if cfg.TextThreshold == nil || cfg.ImageThreshold == nil || cfg.TextWeight == nil || cfg.ImageWeight == nil {
		return cluster.DefaultParams(), nil
	}
	p, err := cluster.NewParams(*cfg.TextThreshold, *cfg.ImageThreshold, *cfg.TextWeight, *cfg.ImageWeight)
	if err != nil {
		return cluster.Params{}, fmt.Errorf("clustering: %w", err)
	}
	return p, nil
}

// run loads the pool, clusters every tier and writes the outputs.
func (a *app) run(ctx context.Context) (pipelineuc.Report, error) {
	logger := logpkg.FromContext(ctx)

	pool, err := a.loader.Load(ctx)
	if err != nil {
		return pipelineuc.Report{}, fmt.Errorf("load pool: %w", err)
	}
	logger.Info("Pool loaded",
		zap.String("url", a.loader.URL()),
		zap.Int("tiers", len(pool.Tiers)),
		zap.Int("documents", pool.Documents()),
		zap.Int("rejected", len(pool.Rejected)),
	)

	report := a.pipeline.Run(ctx, pipelineuc.Input{Tiers: pool.Tiers, Rejected: pool.Rejected})
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("run interrupted: %w", err)
	}

	if err := a.files.Write(ctx, report); err != nil {
		return report, fmt.Errorf("write results: %w", err)
	}
	logger.Info("Results written",
		zap.String("clusters", a.files.ClustersURL()),
		zap.String("error_log", a.files.ErrorLogURL()),
	)

	if a.runs != nil {
		// Files are the primary output; a store failure does not fail the run.
		if err := a.runs.Write(ctx, report); err != nil {
			logger.Warn("Failed to store run", zap.String("run_id", report.RunID), zap.Error(err))
		}
	}
	return report, nil
}

func printSummary(out io.Writer, r pipelineuc.Report, files *result.FileWriter) {
	fmt.Fprintf(out, "run %s\n", r.RunID)
	for _, t := range r.Tiers {
		if t.Failed() {
			fmt.Fprintf(out, "  %-12s FAILED: %v\n", t.Name, t.Err)
			continue
		}
		fmt.Fprintf(out, "  %-12s %d clusters, %d/%d documents clustered, %d skipped\n",
			t.Name, t.Clusters(), t.Clustered, t.Documents, t.Skipped)
	}

	documents := r.Clustered() + len(r.Skipped)
	fmt.Fprintf(out, "tiers: %d, documents: %d, clustered: %d, clusters: %d, skipped: %d, duration: %s\n",
		len(r.Tiers), documents, r.Clustered(), r.ClusterCount(), len(r.Skipped), r.Duration.Round(time.Millisecond))
	if files != nil {
		fmt.Fprintf(out, "clusters: %s\nerror log: %s\n", files.ClustersURL(), files.ErrorLogURL())
	}
}

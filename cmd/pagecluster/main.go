// Command pagecluster groups rendered pages of every tier by text and screenshot similarity.
//
// Usage:
//
//	pagecluster -input output_pool.json -output ./out
//	pagecluster -latest
//
// Env vars:
//
//	ENV               config environment (default: local)
//	VALKEY_ADDR       store address when store.driver is set
//	VALKEY_PASSWORD   store password
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagecluster/internal/config"
	"github.com/kailas-cloud/pagecluster/internal/db"
	dbRedis "github.com/kailas-cloud/pagecluster/internal/db/redis"
	logpkg "github.com/kailas-cloud/pagecluster/internal/logger"
	"github.com/kailas-cloud/pagecluster/internal/metrics"
	"github.com/kailas-cloud/pagecluster/internal/repository/result"
	"github.com/kailas-cloud/pagecluster/internal/version"
)

func main() {
	opts := parseFlags(os.Args[1:])

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, "pagecluster:", err)
		os.Exit(1)
	}
}

type options struct {
	env        string
	configPath string
	input      string
	output     string
	weighting  string
	latest     bool
	version    bool
}

func parseFlags(args []string) options {
	opts := options{}
	fs := flag.NewFlagSet("pagecluster", flag.ExitOnError)
	fs.StringVar(&opts.env, "env", config.GetEnv(), "config environment (local, dev, prod)")
	fs.StringVar(&opts.configPath, "config", "", "explicit config file, overrides -env")
	fs.StringVar(&opts.input, "input", "", "renderer pool URL, overrides input.url")
	fs.StringVar(&opts.output, "output", "", "output directory URL, overrides output.dir")
	fs.StringVar(&opts.weighting, "weighting", "", "text weighting (tf, tfidf), overrides clustering.weighting")
	fs.BoolVar(&opts.latest, "latest", false, "print the latest stored run and exit")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	_ = fs.Parse(args)
	return opts
}

// loadConfig reads the config file with flag overrides applied before validation.
func loadConfig(opts options) (config.Config, error) {
	override := func(c *config.Config) {
		if opts.input != "" {
			c.Input.URL = opts.input
		}
		if opts.output != "" {
			c.Output.Dir = opts.output
		}
		if opts.weighting != "" {
			c.Clustering.Weighting = opts.weighting
		}
	}
	if opts.configPath != "" {
		return config.LoadFile(opts.configPath, override)
	}
	return config.Load(opts.env, override)
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.version {
		fmt.Fprintf(out, "pagecluster %s (%s, %s)\n", version.Version, version.Commit, version.Date)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logpkg.NewLogger(opts.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	logger.Info("Starting pagecluster",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", opts.env),
		zap.String("input", cfg.Input.URL),
		zap.String("output", cfg.Output.Dir),
		zap.String("store_driver", cfg.Store.Driver),
	)

	store, err := connectStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	if opts.latest {
		return printLatest(ctx, cfg.Store, store, out)
	}

	fs := afs.New()
	reg := prometheus.NewRegistry()
	m := metrics.NewPipeline(reg)

	app, err := newApp(cfg, fs, store, m)
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(ctx, cfg.Metrics.Addr, metrics.NewRouter(reg, app.health), logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	report, err := app.run(ctx)
	if err != nil {
		return err
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			logger.Warn("Failed to write metrics textfile", zap.Error(err))
		}
	}

	printSummary(out, report, app.files)
	return nil
}

// connectStore opens the configured run store. It returns nil when no driver is set.
func connectStore(ctx context.Context, cfg config.StoreConfig) (db.Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	// Redis and Valkey speak the same protocol; one rueidis store serves both.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
	}

	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s store not ready: %w", cfg.Driver, err)
	}
	logpkg.FromContext(ctx).Info("Connected to store", zap.Strings("addrs", cfg.Addrs))
	return store, nil
}

func printLatest(ctx context.Context, cfg config.StoreConfig, store db.Store, out io.Writer) error {
	if store == nil {
		return fmt.Errorf("-latest requires store.driver to be set")
	}
	runs := result.NewStore(store, cfg.KeyPrefix, storeTTL(cfg))
	latest, err := runs.Latest(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(latest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal latest run: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

func storeTTL(cfg config.StoreConfig) time.Duration {
	return time.Duration(cfg.TTLHours) * time.Hour
}

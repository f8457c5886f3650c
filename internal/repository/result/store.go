package result

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/pagecluster/internal/db"
	"github.com/kailas-cloud/pagecluster/internal/usecase/pipeline"
)

// DefaultKeyPrefix namespaces every stored key.
const DefaultKeyPrefix = "pagecluster:"

// ErrNoRuns is returned by Latest when nothing has been stored yet.
var ErrNoRuns = errors.New("no stored runs")

// store is the consumer interface for run persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) error
}

// Store keeps run reports in Redis/Valkey under <prefix>run:<id> and <prefix>latest.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// NewStore creates a run store.
func NewStore(s store, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

// RunKey returns the key of one run.
func (s *Store) RunKey(id string) string { return s.prefix + "run:" + id }

// LatestKey returns the key of the most recent run.
func (s *Store) LatestKey() string { return s.prefix + "latest" }

// RunsKey returns the run counter key.
func (s *Store) RunsKey() string { return s.prefix + "runs_total" }

// Write stores the report under its run key and as the latest run.
func (s *Store) Write(ctx context.Context, r pipeline.Report) error {
	data, err := json.Marshal(runFromReport(r))
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", r.RunID, err)
	}

	if err := s.store.SetWithTTL(ctx, s.RunKey(r.RunID), data, s.ttl); err != nil {
		return fmt.Errorf("store run %s: %w", r.RunID, err)
	}
	if err := s.store.SetWithTTL(ctx, s.LatestKey(), data, s.ttl); err != nil {
		return fmt.Errorf("store latest run: %w", err)
	}
	if err := s.store.IncrBy(ctx, s.RunsKey(), 1); err != nil {
		return fmt.Errorf("count run: %w", err)
	}
	return nil
}

// Latest returns the most recently stored run.
func (s *Store) Latest(ctx context.Context) (Run, error) {
	data, err := s.store.Get(ctx, s.LatestKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return Run{}, ErrNoRuns
		}
		return Run{}, fmt.Errorf("get latest run: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("unmarshal latest run: %w", err)
	}
	return run, nil
}

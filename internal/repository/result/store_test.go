package result

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/pagecluster/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	counts map[string]int64
	setErr error
	getErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		data:   map[string][]byte{},
		ttls:   map[string]time.Duration{},
		counts: map[string]int64{},
	}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) IncrBy(_ context.Context, key string, val int64) error {
	m.counts[key] += val
	return nil
}

func TestStore_Write(t *testing.T) {
	ms := newMockStore()
	s := NewStore(ms, "", 24*time.Hour)

	if err := s.Write(context.Background(), testReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"pagecluster:run:run-1", "pagecluster:latest"} {
		raw, ok := ms.data[key]
		if !ok {
			t.Fatalf("key %s not written", key)
		}
		if ms.ttls[key] != 24*time.Hour {
			t.Errorf("%s ttl = %v", key, ms.ttls[key])
		}
		var run Run
		if err := json.Unmarshal(raw, &run); err != nil {
			t.Fatalf("unmarshal %s: %v", key, err)
		}
		if run.RunID != "run-1" || len(run.Clusters["tier1"]) != 2 {
			t.Errorf("%s = %+v", key, run)
		}
	}
	if ms.counts["pagecluster:runs_total"] != 1 {
		t.Errorf("runs_total = %d, want 1", ms.counts["pagecluster:runs_total"])
	}
}

func TestStore_WriteError(t *testing.T) {
	ms := newMockStore()
	ms.setErr = &db.Error{Op: db.OpSet, Err: errors.New("READONLY")}

	err := NewStore(ms, "x:", time.Hour).Write(context.Background(), testReport())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if ms.counts["x:runs_total"] != 0 {
		t.Error("counter must not advance on failed write")
	}
}

func TestStore_Latest(t *testing.T) {
	ms := newMockStore()
	s := NewStore(ms, "p:", time.Hour)
	if err := s.Write(context.Background(), testReport()); err != nil {
		t.Fatal(err)
	}

	run, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.RunID != "run-1" {
		t.Errorf("RunID = %q", run.RunID)
	}
	if !run.StartedAt.Equal(testReport().StartedAt) {
		t.Errorf("StartedAt = %v", run.StartedAt)
	}
	if len(run.Skipped) != 2 {
		t.Errorf("Skipped = %d, want 2", len(run.Skipped))
	}
}

func TestStore_LatestEmpty(t *testing.T) {
	_, err := NewStore(newMockStore(), "", time.Hour).Latest(context.Background())
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("expected ErrNoRuns, got %v", err)
	}
}

func TestStore_LatestErrors(t *testing.T) {
	ms := newMockStore()
	ms.getErr = errors.New("network")
	if _, err := NewStore(ms, "", time.Hour).Latest(context.Background()); err == nil || errors.Is(err, ErrNoRuns) {
		t.Errorf("expected wrapped network error, got %v", err)
	}

	ms = newMockStore()
	ms.data["pagecluster:latest"] = []byte("{not json")
	if _, err := NewStore(ms, "", time.Hour).Latest(context.Background()); err == nil {
		t.Error("expected unmarshal error")
	}
}

func TestStore_Keys(t *testing.T) {
	s := NewStore(newMockStore(), "pc:", time.Hour)
	if s.RunKey("abc") != "pc:run:abc" || s.LatestKey() != "pc:latest" || s.RunsKey() != "pc:runs_total" {
		t.Errorf("keys = %s %s %s", s.RunKey("abc"), s.LatestKey(), s.RunsKey())
	}
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPipeline_DocumentCounters(t *testing.T) {
	m := NewPipeline(prometheus.NewRegistry())

	m.DocumentProcessed("tier1", "clustered")
	m.DocumentProcessed("tier1", "clustered")
	m.DocumentProcessed("tier1", "skipped")
	m.DocumentSkipped("tier1", "decode")

	if v := testutil.ToFloat64(m.documentsTotal.WithLabelValues("tier1", "clustered")); v != 2 {
		t.Errorf("clustered = %f, want 2", v)
	}
	if v := testutil.ToFloat64(m.documentsTotal.WithLabelValues("tier1", "skipped")); v != 1 {
		t.Errorf("skipped = %f, want 1", v)
	}
	if v := testutil.ToFloat64(m.skipsTotal.WithLabelValues("tier1", "decode")); v != 1 {
		t.Errorf("skips = %f, want 1", v)
	}
}

func TestPipeline_TierFinished(t *testing.T) {
	m := NewPipeline(prometheus.NewRegistry())

	m.TierFinished("tier1", 3, 120, 250*time.Millisecond, nil)
	m.TierFinished("tier2", 0, 0, time.Millisecond, errors.New("boom"))

	if v := testutil.ToFloat64(m.clusters.WithLabelValues("tier1")); v != 3 {
		t.Errorf("clusters = %f, want 3", v)
	}
	if v := testutil.ToFloat64(m.vocabularySize.WithLabelValues("tier1")); v != 120 {
		t.Errorf("vocabulary = %f, want 120", v)
	}
	if v := testutil.ToFloat64(m.tiersTotal.WithLabelValues("ok")); v != 1 {
		t.Errorf("tiers ok = %f, want 1", v)
	}
	if v := testutil.ToFloat64(m.tiersTotal.WithLabelValues("error")); v != 1 {
		t.Errorf("tiers error = %f, want 1", v)
	}
	if n := testutil.CollectAndCount(m.tierDuration); n != 2 {
		t.Errorf("tier duration series = %d, want 2", n)
	}
}

func TestPipeline_RunFinished(t *testing.T) {
	m := NewPipeline(prometheus.NewRegistry())
	m.RunFinished(1500 * time.Millisecond)

	if v := testutil.ToFloat64(m.lastRunDuration); v != 1.5 {
		t.Errorf("last run = %f, want 1.5", v)
	}
}

func TestNewPipeline_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPipeline(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	NewPipeline(reg)
}

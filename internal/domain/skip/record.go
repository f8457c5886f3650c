// Package skip records documents excluded from clustering.
package skip

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Record explains why one document was left out of every cluster.
type Record struct {
	Timestamp time.Time
	Tier      string
	Filename  string
	Reason    string
}

// NewRecord creates a record stamped with now (UTC).
func NewRecord(now time.Time, tier, filename string, err error) Record {
	reason := "unknown"
	if err != nil {
		reason = err.Error()
	}
	return Record{Timestamp: now.UTC(), Tier: tier, Filename: filename, Reason: reason}
}

// Line renders the record as one error-log line: "[ts] tier/filename - reason".
// Line breaks inside the reason are flattened to spaces.
func (r Record) Line() string {
	return fmt.Sprintf("[%s] %s/%s - %s",
		r.Timestamp.Format(time.RFC3339Nano), r.Tier, r.Filename, lineBreaks.Replace(r.Reason))
}

// Log is the append-only skip sink shared by all tier workers.
// Appends are serialized by a single mutex.
type Log struct {
	mu      sync.Mutex
	records []Record
}

// NewLog creates an empty log.
func NewLog() *Log { return &Log{} }

// Append adds a record.
func (l *Log) Append(r Record) {
	l.mu.Lock()
	l.records = append(l.records, r)
	l.mu.Unlock()
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Records returns a snapshot ordered by timestamp; equal timestamps keep append order.
func (l *Log) Records() []Record {
	l.mu.Lock()
	out := append([]Record(nil), l.records...)
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

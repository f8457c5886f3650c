// Package loader reads the renderer's output pool into per-tier documents.
package loader

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/kailas-cloud/pagecluster/internal/domain"
	domdoc "github.com/kailas-cloud/pagecluster/internal/domain/document"
	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
)

// Pool is the loaded renderer output: documents per tier in pool order plus
// the entries that cannot be clustered at all.
type Pool struct {
	Tiers    map[string][]domdoc.Document
	Rejected []skip.Rejection
}

// Documents returns the number of entries read, accepted or not.
func (p Pool) Documents() int {
	n := len(p.Rejected)
	for _, docs := range p.Tiers {
		n += len(docs)
	}
	return n
}

// Loader reads a pool from any afs-supported location (file, mem, gs, s3).
type Loader struct {
	fs             afs.Service
	url            string
	screenshotBase string
}

// New creates a loader for the pool at URL.
// Relative screenshot paths resolve against the pool's directory.
func New(fs afs.Service, URL string) *Loader {
	base, _ := url.Split(URL, file.Scheme)
	return &Loader{fs: fs, url: URL, screenshotBase: base}
}

// WithScreenshotBase overrides the directory relative screenshot paths resolve against.
func (l *Loader) WithScreenshotBase(base string) *Loader {
	if base != "" {
		l.screenshotBase = base
	}
	return l
}

// URL returns the pool location.
func (l *Loader) URL() string { return l.url }

// Load reads and validates the pool.
func (l *Loader) Load(ctx context.Context) (Pool, error) {
	rc, err := l.fs.OpenURL(ctx, l.url)
	if err != nil {
		return Pool{}, fmt.Errorf("open pool %s: %w", l.url, err)
	}
	defer func() { _ = rc.Close() }()

	var raw map[string][]entry
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		return Pool{}, fmt.Errorf("decode pool %s: %w", l.url, err)
	}

	pool := Pool{Tiers: make(map[string][]domdoc.Document, len(raw))}
	for tier, entries := range raw {
		docs := make([]domdoc.Document, 0, len(entries))
		for _, e := range entries {
			if e.Error != nil {
				pool.Rejected = append(pool.Rejected, skip.Rejection{
					Tier:     tier,
					Filename: e.name(),
					Err:      fmt.Errorf("%w: %s", domain.ErrRenderFailed, *e.Error),
				})
				continue
			}

			d, err := domdoc.New(e.name(), e.Text, l.resolve(e.Screenshot))
			if err != nil {
				pool.Rejected = append(pool.Rejected, skip.Rejection{Tier: tier, Filename: e.name(), Err: err})
				continue
			}
			docs = append(docs, d)
		}
		pool.Tiers[tier] = docs
	}
	return pool, nil
}

// CheckInput reports whether the pool exists.
func (l *Loader) CheckInput(ctx context.Context) error {
	ok, err := l.fs.Exists(ctx, l.url)
	if err != nil {
		return fmt.Errorf("check pool %s: %w", l.url, err)
	}
	if !ok {
		return fmt.Errorf("pool %s not found", l.url)
	}
	return nil
}

func (l *Loader) resolve(screenshot string) string {
	if screenshot == "" || url.Scheme(screenshot, "") != "" || !url.IsRelative(screenshot) {
		return screenshot
	}
	return url.Join(l.screenshotBase, screenshot)
}

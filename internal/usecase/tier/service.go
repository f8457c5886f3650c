// Package tier clusters the documents of a single tier.
package tier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/pagecluster/internal/domain"
	dombatch "github.com/kailas-cloud/pagecluster/internal/domain/batch"
	"github.com/kailas-cloud/pagecluster/internal/domain/cluster"
	domdoc "github.com/kailas-cloud/pagecluster/internal/domain/document"
	"github.com/kailas-cloud/pagecluster/internal/domain/histogram"
	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
	"github.com/kailas-cloud/pagecluster/internal/domain/text"
	domtier "github.com/kailas-cloud/pagecluster/internal/domain/tier"
	"github.com/kailas-cloud/pagecluster/internal/logger"
)

// DefaultDecodeWorkers is the number of screenshots decoded concurrently per tier.
const DefaultDecodeWorkers = 8

// Document outcome labels.
const (
	StatusClustered = "clustered"
	StatusSkipped   = "skipped"
)

// Service turns one tier's documents into clusters.
type Service struct {
	decoder       ImageDecoder
	sink          SkipSink
	params        cluster.Params
	weighting     text.Weighting
	decodeWorkers int
	recorder      Recorder
	now           func() time.Time
}

// New creates a tier service.
func New(decoder ImageDecoder, sink SkipSink, params cluster.Params) *Service {
	return &Service{
		decoder:       decoder,
		sink:          sink,
		params:        params,
		weighting:     text.WeightingTF,
		decodeWorkers: DefaultDecodeWorkers,
		recorder:      nopRecorder{},
		now:           time.Now,
	}
}

// WithWeighting selects the text weighting scheme.
func (s *Service) WithWeighting(w text.Weighting) *Service {
	s.weighting = w
	return s
}

// WithDecodeWorkers configures decode concurrency.
func (s *Service) WithDecodeWorkers(n int) *Service {
	if n > 0 {
		s.decodeWorkers = n
	}
	return s
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithClock overrides the skip record clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Process clusters docs in input order. Undecodable documents go to the skip
// sink and the rest of the tier carries on, including when decoding panics.
// A cancelled context or a panic outside per-document extraction fails only
// this tier's result.
func (s *Service) Process(ctx context.Context, name string, docs []domdoc.Document) (res domtier.Result) {
	start := time.Now()
	ctx = logger.WithTier(ctx, name)
	log := logger.FromContext(ctx)

	res = domtier.Result{Name: name, Documents: len(docs)}

	defer func() {
		if r := recover(); r != nil {
			res.Groups = nil
			res.Clustered = 0
			res.Err = fmt.Errorf("tier %s: panic: %v: %w", name, r, domain.ErrTierFailed)
		}
		res.Duration = time.Since(start)
		s.recorder.TierFinished(name, len(res.Groups), res.VocabularySize, res.Duration, res.Err)

		if res.Err != nil {
			log.Error("tier failed", zap.Error(res.Err), zap.Duration("duration", res.Duration))
			return
		}
		log.Info("tier clustered",
			zap.Int("documents", res.Documents),
			zap.Int("clusters", len(res.Groups)),
			zap.Int("skipped", res.Skipped),
			zap.Duration("duration", res.Duration),
		)
	}()

	unique, dups := dedupe(docs)

	texts := make([]string, len(unique))
	for i, d := range unique {
		texts[i] = d.Text()
	}
	vocab := text.BuildVocabulary(texts)
	res.VocabularySize = vocab.Len()
	log.Debug("vocabulary built", zap.Int("terms", vocab.Len()))

	results, err := s.extract(ctx, unique, text.NewVectorizer(vocab, s.weighting))
	if err != nil {
		res.Err = fmt.Errorf("tier %s: extract features: %w: %w", name, err, domain.ErrTierFailed)
		return res
	}

	for _, d := range dups {
		s.skip(ctx, name, d.Filename(), fmt.Errorf("%s: %w", d.Filename(), domain.ErrDuplicateDocument))
		res.Skipped++
	}

	engine := cluster.NewEngine(s.params)
	for _, r := range results {
		if r.Status() == dombatch.StatusSkipped {
			s.skip(ctx, name, r.Filename(), r.Err())
			res.Skipped++
			continue
		}
		if _, err := engine.Add(r.Item()); err != nil {
			s.skip(ctx, name, r.Filename(), err)
			res.Skipped++
			continue
		}
		s.recorder.DocumentProcessed(name, StatusClustered)
		res.Clustered++
	}

	res.Groups = engine.Groups()
	return res
}

// extract decodes screenshots concurrently and vectorizes text. Results keep input order.
func (s *Service) extract(
	ctx context.Context, docs []domdoc.Document, vz *text.Vectorizer,
) ([]dombatch.Result, error) {
	results := make([]dombatch.Result, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.decodeWorkers)

	for i, d := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context error
			}
			results[i] = s.extractOne(gctx, d, vz)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	return results, nil
}

// extractOne builds one document's features. A decoder panic skips the document.
func (s *Service) extractOne(ctx context.Context, d domdoc.Document, vz *text.Vectorizer) (res dombatch.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = dombatch.NewSkipped(d.Filename(),
				domain.NewImageDecodeError(d.Screenshot(), fmt.Errorf("panic: %v", r)))
		}
	}()

	img, err := s.decoder.Decode(ctx, d.Screenshot())
	if err != nil {
		var decErr *domain.ImageDecodeError
		if !errors.As(err, &decErr) {
			err = domain.NewImageDecodeError(d.Screenshot(), err)
		}
		return dombatch.NewSkipped(d.Filename(), err)
	}

	tf := vz.Vectorize(d.Filename(), d.Text())
	hist := histogram.Compute(img)
	return dombatch.NewOK(cluster.Item{
		Filename: d.Filename(),
		Text:     tf.Vector,
		Image:    hist.Histogram,
	})
}

func (s *Service) skip(ctx context.Context, tier, filename string, err error) {
	s.sink.Append(skip.NewRecord(s.now(), tier, filename, err))
	s.recorder.DocumentProcessed(tier, StatusSkipped)
	s.recorder.DocumentSkipped(tier, skip.Class(err))
	logger.FromContext(ctx).Warn("document skipped",
		zap.String("filename", filename),
		zap.Error(err),
	)
}

// dedupe keeps the first occurrence of each filename.
func dedupe(docs []domdoc.Document) (unique, dups []domdoc.Document) {
	seen := make(map[string]struct{}, len(docs))
	unique = make([]domdoc.Document, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.Filename()]; ok {
			dups = append(dups, d)
			continue
		}
		seen[d.Filename()] = struct{}{}
		unique = append(unique, d)
	}
	return unique, dups
}

type nopRecorder struct{}

func (nopRecorder) DocumentProcessed(string, string)                    {}
func (nopRecorder) DocumentSkipped(string, string)                      {}
func (nopRecorder) TierFinished(string, int, int, time.Duration, error) {}

package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"BiasLab/internal/domain"
	"BiasLab/internal/metrics"
	"BiasLab/internal/ports"
)

// PipelineDeps wires all driven adapters into the analysis pipeline.
type PipelineDeps struct {
	Fetcher    ports.ContentFetcher
	Scorer     ports.BiasScorer
	Metrics    *metrics.System
	Business   *metrics.Business
	Repository ports.AnalysisRepository
	Logger     *slog.Logger
}

// Pipeline sequences fetch, score, and bookkeeping for one article.
type Pipeline struct {
	fetcher    ports.ContentFetcher
	scorer     ports.BiasScorer
	metrics    *metrics.System
	business   *metrics.Business
	repository ports.AnalysisRepository
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		fetcher:    deps.Fetcher,
		scorer:     deps.Scorer,
		metrics:    deps.Metrics,
		business:   deps.Business,
		repository: deps.Repository,
		logger:     deps.Logger,
	}
}

// ProcessArticle runs the full pipeline. It always returns a response:
// scoring degradations still count as success (a value was produced),
// while a scorer contract violation yields a status "error" response
// and bumps the error counter.
func (p *Pipeline) ProcessArticle(ctx context.Context, url string, segment domain.UserSegment) domain.AnalysisResponse {
	articleID := newArticleID(url, time.Now())
	start := time.Now()

	content := p.fetcher.Extract(ctx, url)

	score, err := p.scorer.Analyze(ctx, content.Title, content.Source, content.Snippet)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordError()
		}
		p.warn("article processing failed", "url", url, "error", err)

		resp := domain.AnalysisResponse{
			ArticleID:          articleID,
			URL:                url,
			Title:              "Processing Failed",
			Source:             "Unknown",
			Scores:             map[string]float64{},
			HighlightedPhrases: map[string][]string{"error": {err.Error()}},
			Confidence:         0,
			ProcessingTimeMS:   msSince(start),
			Timestamp:          domain.FormatTimestamp(time.Now()),
			Status:             domain.StatusError,
		}
		p.persist(ctx, resp)
		return resp
	}

	if p.metrics != nil {
		p.metrics.RecordArticle(score.ProcessingTimeMS)
	}
	if p.business != nil {
		p.business.TrackSegment(segment)
	}

	resp := domain.AnalysisResponse{
		ArticleID:          articleID,
		URL:                url,
		Title:              content.Title,
		Source:             content.Source,
		Scores:             score.Scores(),
		HighlightedPhrases: score.HighlightedPhrases,
		Confidence:         score.Confidence,
		ProcessingTimeMS:   score.ProcessingTimeMS,
		Timestamp:          domain.FormatTimestamp(time.Now()),
		Status:             domain.StatusSuccess,
		NarrativeCluster:   score.NarrativeCluster,
	}
	p.persist(ctx, resp)

	p.info("processed article",
		"source", resp.Source,
		"processing_ms", resp.ProcessingTimeMS,
		"confidence", resp.Confidence,
	)

	return resp
}

func (p *Pipeline) persist(ctx context.Context, resp domain.AnalysisResponse) {
	if p.repository == nil {
		return
	}
	if err := p.repository.SaveAnalysis(ctx, resp); err != nil {
		p.warn("persist analysis failed", "article_id", resp.ArticleID, "error", err)
	}
}

// newArticleID derives a collision-tolerant identifier from the current
// time and a hash of the URL; nothing depends on it being unique.
func newArticleID(url string, now time.Time) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return fmt.Sprintf("analysis_%d_%d", now.Unix(), h.Sum32()%10000)
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"BiasLab/internal/domain"
	"BiasLab/internal/metrics"
	"BiasLab/internal/narrative"
	"BiasLab/internal/ports"
)

// ErrInvalidModelResponse marks a completion that was reachable but not
// parseable as the required JSON contract. Callers must surface this
// instead of masking it behind a neutral score.
var ErrInvalidModelResponse = errors.New("invalid model response format")

const maxConcurrentCalls = 10

// Scorer sends article text to the remote model under a bounded
// concurrency gate and shapes the reply into a BiasScore.
type Scorer struct {
	client  ports.CompletionClient
	metrics *metrics.System
	logger  *slog.Logger
	gate    chan struct{}
}

var _ ports.BiasScorer = (*Scorer)(nil)

// NewScorer wires the completion client and metrics sink.
func NewScorer(client ports.CompletionClient, sys *metrics.System, logger *slog.Logger) *Scorer {
	return &Scorer{
		client:  client,
		metrics: sys,
		logger:  logger,
		gate:    make(chan struct{}, maxConcurrentCalls),
	}
}

// modelResult mirrors the JSON contract; pointers distinguish absent
// fields from zero scores.
type modelResult struct {
	IdeologicalStance  *float64            `json:"ideological_stance"`
	FactualGrounding   *float64            `json:"factual_grounding"`
	FramingChoices     *float64            `json:"framing_choices"`
	EmotionalTone      *float64            `json:"emotional_tone"`
	SourceTransparency *float64            `json:"source_transparency"`
	Confidence         *float64            `json:"confidence"`
	HighlightedPhrases map[string][]string `json:"highlighted_phrases"`
	Reasoning          map[string]string   `json:"reasoning"`
}

func (r modelResult) missingField() string {
	switch {
	case r.IdeologicalStance == nil:
		return domain.DimensionIdeologicalStance
	case r.FactualGrounding == nil:
		return domain.DimensionFactualGrounding
	case r.FramingChoices == nil:
		return domain.DimensionFramingChoices
	case r.EmotionalTone == nil:
		return domain.DimensionEmotionalTone
	case r.SourceTransparency == nil:
		return domain.DimensionSourceTransparency
	case r.Confidence == nil:
		return "confidence"
	case r.HighlightedPhrases == nil:
		return "highlighted_phrases"
	case r.Reasoning == nil:
		return "reasoning"
	}
	return ""
}

// Analyze scores one article. Most failures degrade into the neutral
// fallback score; a malformed JSON completion instead returns
// ErrInvalidModelResponse so the caller can report the contract
// violation. Processing time is attached to every outcome.
func (s *Scorer) Analyze(ctx context.Context, title, source, snippet string) (domain.BiasScore, error) {
	start := time.Now()

	if s.client == nil {
		return s.fallback(start, fmt.Errorf("completion client not configured")), nil
	}

	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		return s.fallback(start, fmt.Errorf("waiting for analysis slot: %w", ctx.Err())), nil
	}
	defer func() { <-s.gate }()

	raw, err := s.client.Complete(ctx, buildPrompt(title, source, snippet))
	if err != nil {
		s.warn("bias analysis failed", "error", err)
		return s.fallback(start, err), nil
	}

	cleaned := stripCodeFence(raw)

	var result modelResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		s.warn("model returned unparseable JSON", "error", err, "raw", cleaned)
		return domain.BiasScore{}, fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}

	if field := result.missingField(); field != "" {
		return s.fallback(start, fmt.Errorf("model response missing %s", field)), nil
	}

	elapsed := msSince(start)
	score := domain.BiasScore{
		IdeologicalStance:  *result.IdeologicalStance,
		FactualGrounding:   *result.FactualGrounding,
		FramingChoices:     *result.FramingChoices,
		EmotionalTone:      *result.EmotionalTone,
		SourceTransparency: *result.SourceTransparency,
		Confidence:         *result.Confidence,
		HighlightedPhrases: result.HighlightedPhrases,
		Reasoning:          result.Reasoning,
		ProcessingTimeMS:   elapsed,
		NarrativeCluster:   narrative.Classify(title, snippet),
	}

	if s.metrics != nil {
		s.metrics.RecordScore(elapsed, score.Confidence)
	}

	return score, nil
}

// fallback is the fixed neutral response: all dimensions 50, low
// confidence, cause recorded under the "error" key.
func (s *Scorer) fallback(start time.Time, cause error) domain.BiasScore {
	return domain.BiasScore{
		IdeologicalStance:  50.0,
		FactualGrounding:   50.0,
		FramingChoices:     50.0,
		EmotionalTone:      50.0,
		SourceTransparency: 50.0,
		Confidence:         0.1,
		HighlightedPhrases: map[string][]string{
			"error": {"Analysis failed", "Error: " + cause.Error()},
		},
		Reasoning:        map[string]string{"error": "Analysis failed: " + cause.Error()},
		ProcessingTimeMS: msSince(start),
	}
}

func (s *Scorer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.ReplaceAll(text, "```json", "")
	}
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

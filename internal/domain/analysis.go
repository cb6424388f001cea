package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Bias dimensions reported by the scorer, in their canonical order.
const (
	DimensionIdeologicalStance  = "ideological_stance"
	DimensionFactualGrounding   = "factual_grounding"
	DimensionFramingChoices     = "framing_choices"
	DimensionEmotionalTone      = "emotional_tone"
	DimensionSourceTransparency = "source_transparency"
)

// Dimensions lists the five scoring axes in canonical order.
var Dimensions = []string{
	DimensionIdeologicalStance,
	DimensionFactualGrounding,
	DimensionFramingChoices,
	DimensionEmotionalTone,
	DimensionSourceTransparency,
}

// Priority describes how urgently a request should be handled.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// UserSegment tags a request with the caller's audience type.
type UserSegment string

const (
	SegmentJournalist UserSegment = "journalist"
	SegmentResearcher UserSegment = "researcher"
	SegmentNewsOrg    UserSegment = "news_org"
)

// AnalysisRequest is a single incoming analysis job.
type AnalysisRequest struct {
	URL         string      `json:"url"`
	Priority    Priority    `json:"priority"`
	UserSegment UserSegment `json:"user_segment,omitempty"`
}

// Validate applies defaults and rejects malformed fields.
func (r *AnalysisRequest) Validate() error {
	parsed, err := url.Parse(r.URL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("url must be a valid http(s) URL")
	}

	if r.Priority == "" {
		r.Priority = PriorityNormal
	}
	switch r.Priority {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
	default:
		return fmt.Errorf("priority must be one of normal, high, urgent")
	}

	switch r.UserSegment {
	case "", SegmentJournalist, SegmentResearcher, SegmentNewsOrg:
	default:
		return fmt.Errorf("user_segment must be one of journalist, researcher, news_org")
	}

	return nil
}

// ExtractedContent is the best-effort metadata pulled from an article page.
// Fetch failures substitute placeholders, so fields are never empty.
type ExtractedContent struct {
	Title   string
	Source  string
	Snippet string
}

// BiasScore is the complete result of a single scoring pass.
type BiasScore struct {
	IdeologicalStance  float64
	FactualGrounding   float64
	FramingChoices     float64
	EmotionalTone      float64
	SourceTransparency float64
	Confidence         float64
	HighlightedPhrases map[string][]string
	Reasoning          map[string]string
	ProcessingTimeMS   float64
	NarrativeCluster   string
}

// Scores returns the five dimension values keyed by dimension name.
func (b BiasScore) Scores() map[string]float64 {
	return map[string]float64{
		DimensionIdeologicalStance:  b.IdeologicalStance,
		DimensionFactualGrounding:   b.FactualGrounding,
		DimensionFramingChoices:     b.FramingChoices,
		DimensionEmotionalTone:      b.EmotionalTone,
		DimensionSourceTransparency: b.SourceTransparency,
	}
}

// Analysis statuses reported to callers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Health statuses reported from the metrics endpoint.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// AnalysisResponse is the wire shape returned from POST /analyze.
type AnalysisResponse struct {
	ArticleID          string              `json:"article_id"`
	URL                string              `json:"url"`
	Title              string              `json:"title"`
	Source             string              `json:"source"`
	Scores             map[string]float64  `json:"scores"`
	HighlightedPhrases map[string][]string `json:"highlighted_phrases"`
	Confidence         float64             `json:"confidence"`
	ProcessingTimeMS   float64             `json:"processing_time_ms"`
	Timestamp          string              `json:"timestamp"`
	Status             string              `json:"status"`
	NarrativeCluster   string              `json:"narrative_cluster,omitempty"`
}

// FormatTimestamp renders t as UTC RFC3339, the timestamp shape used
// across all responses.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

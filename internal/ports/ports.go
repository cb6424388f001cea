package ports

import (
	"context"
	"time"

	"BiasLab/internal/domain"
)

// ContentFetcher retrieves a remote article and extracts its metadata.
// Implementations never fail: any fetch or parse problem degrades into
// a placeholder ExtractedContent.
type ContentFetcher interface {
	Extract(ctx context.Context, url string) domain.ExtractedContent
}

// CompletionClient sends a prompt to a remote text-generation model and
// returns the raw completion text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// BiasScorer turns extracted article text into a BiasScore. The only
// error implementations may return is the malformed-model-response
// contract violation; everything else degrades into a neutral score.
type BiasScorer interface {
	Analyze(ctx context.Context, title, source, snippet string) (domain.BiasScore, error)
}

// AnalysisRepository persists completed analyses for history and audit.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, res domain.AnalysisResponse) error
}

// Notifier delivers operational alerts to an external channel.
type Notifier interface {
	PublishAlert(ctx context.Context, message string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"BiasLab/internal/domain"
	"BiasLab/internal/ports"
)

// PostgresRepository keeps a history of completed analyses. It is
// entirely optional: a nil db turns every call into a no-op so the
// pipeline works without persistence configured.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.AnalysisRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SaveAnalysis appends one analysis outcome to the history table.
func (r *PostgresRepository) SaveAnalysis(ctx context.Context, res domain.AnalysisResponse) error {
	if r.db == nil {
		return nil
	}

	builder := sq.Insert("analysis_history").
		Columns(
			"article_id", "url", "title", "source",
			"ideological_stance", "factual_grounding", "framing_choices",
			"emotional_tone", "source_transparency",
			"confidence", "processing_time_ms", "status", "narrative_cluster",
			"highlighted_phrases",
		).
		Values(
			res.ArticleID, res.URL, res.Title, res.Source,
			res.Scores[domain.DimensionIdeologicalStance],
			res.Scores[domain.DimensionFactualGrounding],
			res.Scores[domain.DimensionFramingChoices],
			res.Scores[domain.DimensionEmotionalTone],
			res.Scores[domain.DimensionSourceTransparency],
			res.Confidence, res.ProcessingTimeMS, res.Status, nullableCluster(res.NarrativeCluster),
			pq.Array(flattenPhrases(res.HighlightedPhrases)),
		).
		PlaceholderFormat(sq.Dollar)

	if _, err := builder.RunWith(r.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("insert analysis %s: %w", res.ArticleID, err)
	}

	return nil
}

func nullableCluster(cluster string) any {
	if cluster == "" {
		return nil
	}
	return cluster
}

// flattenPhrases folds the per-dimension phrase lists into a single
// text array column, each entry prefixed with its dimension. Keys are
// sorted so rows are stable across runs.
func flattenPhrases(phrases map[string][]string) []string {
	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flat := make([]string, 0, len(phrases))
	for _, k := range keys {
		for _, p := range phrases[k] {
			flat = append(flat, k+": "+p)
		}
	}
	return flat
}

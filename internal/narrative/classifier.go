package narrative

import (
	"strings"

	"BiasLab/internal/domain"
)

// Classify assigns a narrative cluster label by counting keyword hits
// over the article title and snippet. It returns an empty string when
// no cluster keyword occurs at all. Pure and deterministic: ties go to
// the cluster listed first in domain.NarrativeClusters.
func Classify(title, snippet string) string {
	text := strings.ToLower(title + " " + snippet)

	best := ""
	bestScore := 0
	for _, cluster := range domain.NarrativeClusters {
		score := 0
		for _, keyword := range cluster.Keywords {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = cluster.Name
			bestScore = score
		}
	}

	return best
}

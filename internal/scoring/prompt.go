package scoring

import "fmt"

// promptTemplate embeds the strict JSON output contract the remote
// model must follow. Any completion that does not parse as this shape
// is a contract violation, not an inconclusive analysis.
const promptTemplate = `You are an expert media bias analyst with 10+ years of experience. Analyze this article for bias across 5 dimensions (0-100 scale).

ARTICLE DETAILS:
Title: %s
Source: %s
Content: %s

SCORING FRAMEWORK (0-100 scale):
1. IDEOLOGICAL_STANCE: Political lean (0=left, 50=center, 100=right)
2. FACTUAL_GROUNDING: Source quality and claim verification (0=poor, 100=excellent)
3. FRAMING_CHOICES: Editorial slant and emphasis (0=neutral, 100=heavily framed)
4. EMOTIONAL_TONE: Language neutrality (0=clinical, 100=inflammatory)
5. SOURCE_TRANSPARENCY: Attribution clarity (0=vague, 100=clear)

For each dimension, identify 1-3 specific phrases that justify the score.

CRITICAL: Respond ONLY with valid JSON in this exact format:
{
  "ideological_stance": [0-100 integer],
  "factual_grounding": [0-100 integer],
  "framing_choices": [0-100 integer],
  "emotional_tone": [0-100 integer],
  "source_transparency": [0-100 integer],
  "confidence": [0.0-1.0 float],
  "highlighted_phrases": {
    "ideological_stance": ["phrase1", "phrase2"],
    "factual_grounding": ["phrase1", "phrase2"],
    "framing_choices": ["phrase1", "phrase2"],
    "emotional_tone": ["phrase1", "phrase2"],
    "source_transparency": ["phrase1", "phrase2"]
  },
  "reasoning": {
    "ideological_stance": "Brief explanation",
    "factual_grounding": "Brief explanation",
    "framing_choices": "Brief explanation",
    "emotional_tone": "Brief explanation",
    "source_transparency": "Brief explanation"
  }
}`

func buildPrompt(title, source, snippet string) string {
	return fmt.Sprintf(promptTemplate, title, source, snippet)
}

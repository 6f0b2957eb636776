// Package fallback is the deterministic, network-independent classification
// path. Intents are scored from a data table of weighted keyword signals;
// precedence and thresholds live in the table and constants, not in control
// flow.
package fallback

import (
	"strings"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

const (
	// minScore is the weakest signal still accepted as a real match.
	minScore = 0.5

	// defaultConfidence is reported when no intent scores at all and the
	// classifier falls back to grab_drink.
	defaultConfidence = 0.3

	// confidenceBase and confidenceStep turn match density into a
	// confidence value: one matched signal reports 0.6, each further
	// signal adds 0.1.
	confidenceBase = 0.5
	confidenceStep = 0.1

	// MaxConfidence caps every fallback result below what a confident LLM
	// reply reports, so callers can tell the paths apart.
	MaxConfidence = 0.75
)

// Classifier scores utterances against the rule table. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	table []intentRules
}

func New() *Classifier {
	return &Classifier{table: ruleTable}
}

// Classify always resolves to one of the six intents; it never returns
// "unknown". The highest-scoring intent wins and ties break by table order
// (cancel_order > modify_order > query_status > deliver_drink >
// recommend_drink > grab_drink).
func (c *Classifier) Classify(text string) (models.IntentType, float64) {
	lowered := strings.ToLower(text)

	best := models.IntentGrabDrink
	bestScore := 0.0
	bestMatches := 0

	for _, candidate := range c.table {
		score := 0.0
		matches := 0
		for _, r := range candidate.rules {
			if strings.Contains(lowered, r.pattern) {
				score += r.weight
				matches++
			}
		}
		// Strictly-greater keeps the earlier (higher-priority) intent on
		// equal scores.
		if score > bestScore {
			best = candidate.intent
			bestScore = score
			bestMatches = matches
		}
	}

	if bestScore < minScore {
		return models.IntentGrabDrink, defaultConfidence
	}

	confidence := confidenceBase + confidenceStep*float64(bestMatches)
	if confidence > MaxConfidence {
		confidence = MaxConfidence
	}
	return best, confidence
}

// Package extract pulls the seven entity slots out of raw utterance text.
// It is the single source of truth for entity shape: values produced by the
// LLM pass through the same canonicalization as values matched from text, so
// "美式" and "美式咖啡" always end up as the same drink_name.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

var (
	arabicQuantityRe = regexp.MustCompile(`(\d+)\s*(?:[杯瓶个份]|cups?|bottles?|glasses?|pieces?)`)

	englishNumeralRe = regexp.MustCompile(`\b(one|two|three|four|five)\b`)

	// Trailing noun phrase after a delivery trigger, for locations outside
	// the curated vocabulary ("送到三楼茶水间").
	locationAfterTriggerRe = regexp.MustCompile(`(?:送到|送往|送给|拿到|拿给|带到|放到)\s*([^\s，。！？!?,.、的]+)`)
)

// Extractor is stateless and safe for concurrent use.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract runs the ordered pattern families over the text. It is idempotent:
// the same text always yields the same mapping. Within a family the first
// match wins; later candidates are ignored rather than treated as errors.
func (e *Extractor) Extract(text string) models.Entities {
	entities := models.Entities{}
	lowered := strings.ToLower(text)

	if v, ok := matchVocab(lowered, drinkVocab); ok {
		entities[models.EntityDrinkName] = v
	}
	if v, ok := matchVocab(lowered, brandVocab); ok {
		entities[models.EntityBrand] = v
	}
	if v, ok := matchVocab(lowered, sizeVocab); ok {
		entities[models.EntitySize] = v
	}
	if v, ok := matchVocab(lowered, temperatureVocab); ok {
		entities[models.EntityTemperature] = v
	}
	if v, ok := matchVocab(lowered, preferenceVocab); ok {
		entities[models.EntityPreference] = v
	}
	if v, ok := e.extractLocation(text, lowered); ok {
		entities[models.EntityLocation] = v
	}
	if q, ok := extractQuantity(lowered); ok {
		entities[models.EntityQuantity] = q
	}

	return entities
}

// NormalizeValue canonicalizes one externally supplied entity value, e.g.
// from a validated LLM reply. The boolean is false when the value is
// malformed for the slot and should be discarded.
func (e *Extractor) NormalizeValue(key models.EntityType, value interface{}) (interface{}, bool) {
	if key == models.EntityQuantity {
		return normalizeQuantity(value)
	}

	s, ok := value.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	lowered := strings.ToLower(s)
	var vocab []vocabEntry
	switch key {
	case models.EntityDrinkName:
		vocab = drinkVocab
	case models.EntityBrand:
		vocab = brandVocab
	case models.EntitySize:
		vocab = sizeVocab
	case models.EntityTemperature:
		vocab = temperatureVocab
	case models.EntityPreference:
		vocab = preferenceVocab
	case models.EntityLocation:
		vocab = locationVocab
	default:
		return nil, false
	}

	if v, ok := lookupVocab(lowered, vocab); ok {
		return v, true
	}
	// Outside the curated vocabulary the model's phrasing is kept as-is.
	return s, true
}

// matchVocab scans free text for any vocabulary surface form.
func matchVocab(lowered string, vocab []vocabEntry) (string, bool) {
	for _, entry := range vocab {
		if strings.Contains(lowered, strings.ToLower(entry.match)) {
			return entry.canonical, true
		}
	}
	return "", false
}

// lookupVocab canonicalizes a whole value. Containment would be wrong here:
// "抹茶星冰乐" is its own drink, not a kind of "茶".
func lookupVocab(lowered string, vocab []vocabEntry) (string, bool) {
	for _, entry := range vocab {
		if lowered == strings.ToLower(entry.match) {
			return entry.canonical, true
		}
	}
	return "", false
}

func (e *Extractor) extractLocation(text, lowered string) (string, bool) {
	if v, ok := matchVocab(lowered, locationVocab); ok {
		return v, true
	}

	// Heuristic path: whatever follows a delivery trigger word. Single-rune
	// captures are pronouns ("送给我"), not places.
	if m := locationAfterTriggerRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(candidate) >= 2 {
			return candidate, true
		}
	}
	return "", false
}

func extractQuantity(lowered string) (int, bool) {
	if m := arabicQuantityRe.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	for _, numeral := range chineseNumerals {
		if strings.Contains(lowered, numeral.word) {
			return numeral.value, true
		}
	}
	if m := englishNumeralRe.FindStringSubmatch(lowered); m != nil {
		return englishNumeralValues[m[1]], true
	}
	return 0, false
}

var englishNumeralValues = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
}

func normalizeQuantity(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 && v == float64(int(v)) {
			return int(v), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n, true
		}
	}
	return nil, false
}

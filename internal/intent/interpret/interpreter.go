// Package interpret turns the LLM's raw reply text into a validated
// IntentResult. Replies may wrap the JSON record in prose; the interpreter
// locates the outermost object, checks it against a schema, and either
// accepts a fully normalized result or rejects the reply with a typed error
// so the orchestrator can route to the fallback path.
package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/extract"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

var (
	// ErrMalformed reports a reply with no parseable record or one that
	// fails schema validation (including a missing confidence).
	ErrMalformed = errors.New("REPLY_MALFORMED")
	// ErrUnknownIntent reports a record whose intent is outside the six
	// recognized values.
	ErrUnknownIntent = errors.New("INTENT_UNKNOWN")
)

// replySchema is the contract the prompt instructs the model to honor.
// Unknown entity keys are tolerated here and dropped during normalization.
const replySchema = `{
	"type": "object",
	"required": ["intent", "confidence"],
	"properties": {
		"intent": {"type": "string"},
		"confidence": {"type": "number"},
		"entities": {"type": "object"}
	}
}`

type replyRecord struct {
	Intent     string                 `json:"intent"`
	Confidence float64                `json:"confidence"`
	Entities   map[string]interface{} `json:"entities"`
}

// Interpreter validates and normalizes LLM replies. Safe for concurrent use.
type Interpreter struct {
	schema    *gojsonschema.Schema
	extractor *extract.Extractor
	logger    logger.Logger
}

func New(extractor *extract.Extractor, log logger.Logger) (*Interpreter, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(replySchema))
	if err != nil {
		return nil, fmt.Errorf("compile reply schema: %w", err)
	}
	return &Interpreter{
		schema:    schema,
		extractor: extractor,
		logger: log.With(map[string]interface{}{
			"component": "interpreter",
		}),
	}, nil
}

// Interpret parses one raw reply. On success the returned result carries the
// original reply in RawText; on failure the error wraps ErrMalformed or
// ErrUnknownIntent and the orchestrator falls back. It never panics on
// adversarial input.
func (i *Interpreter) Interpret(raw string) (*models.IntentResult, error) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrMalformed)
	}

	validation, err := i.schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, formatSchemaErrors(validation))
	}

	var record replyRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	intent, ok := models.ParseIntentType(record.Intent)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, record.Intent)
	}

	// The model occasionally reports mis-scaled confidence (e.g. 90 for
	// 0.9); clamping keeps the plausible scalar instead of discarding the
	// whole reply.
	confidence := record.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	entities := models.Entities{}
	for key, value := range record.Entities {
		entityType, known := models.KnownEntityType(key)
		if !known {
			i.logger.Warn("dropping unknown entity key", map[string]interface{}{
				"key": key,
			})
			continue
		}
		normalized, valid := i.extractor.NormalizeValue(entityType, value)
		if !valid {
			i.logger.Warn("dropping malformed entity value", map[string]interface{}{
				"key":   key,
				"value": value,
			})
			continue
		}
		entities[entityType] = normalized
	}

	return &models.IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
		RawText:    raw,
	}, nil
}

// extractJSONObject returns the first balanced top-level JSON object in the
// text, tolerating prose before and after it. Brace counting skips braces
// inside string literals.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for idx := start; idx < len(text); idx++ {
		ch := text[idx]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : idx+1], true
				}
			}
		}
	}
	return "", false
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	parts := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		parts = append(parts, desc.String())
	}
	return strings.Join(parts, "; ")
}

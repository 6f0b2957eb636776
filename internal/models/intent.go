// internal/models/intent.go
package models

import "strings"

// IntentType is the closed set of beverage intents the service can resolve.
type IntentType string

const (
	IntentGrabDrink      IntentType = "grab_drink"
	IntentDeliverDrink   IntentType = "deliver_drink"
	IntentRecommendDrink IntentType = "recommend_drink"
	IntentCancelOrder    IntentType = "cancel_order"
	IntentQueryStatus    IntentType = "query_status"
	IntentModifyOrder    IntentType = "modify_order"
)

// AllIntents lists every recognized intent in a fixed order.
var AllIntents = []IntentType{
	IntentGrabDrink,
	IntentDeliverDrink,
	IntentRecommendDrink,
	IntentCancelOrder,
	IntentQueryStatus,
	IntentModifyOrder,
}

// ParseIntentType normalizes case, surrounding whitespace, and separator
// style ("Grab Drink", "grab-drink") before matching against the closed set.
func ParseIntentType(s string) (IntentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	candidate := IntentType(normalized)
	for _, intent := range AllIntents {
		if candidate == intent {
			return intent, true
		}
	}
	return "", false
}

// IsValid reports whether t is one of the six recognized intents.
func (t IntentType) IsValid() bool {
	_, ok := ParseIntentType(string(t))
	return ok
}

// EntityType names the seven string-valued slots a request can mention.
type EntityType string

const (
	EntityDrinkName   EntityType = "drink_name"
	EntityBrand       EntityType = "brand"
	EntitySize        EntityType = "size"
	EntityTemperature EntityType = "temperature"
	EntityQuantity    EntityType = "quantity"
	EntityLocation    EntityType = "location"
	EntityPreference  EntityType = "preference"
)

// AllEntityTypes lists every recognized entity slot.
var AllEntityTypes = []EntityType{
	EntityDrinkName,
	EntityBrand,
	EntitySize,
	EntityTemperature,
	EntityQuantity,
	EntityLocation,
	EntityPreference,
}

// KnownEntityType reports whether key names one of the seven slots.
func KnownEntityType(key string) (EntityType, bool) {
	candidate := EntityType(strings.ToLower(strings.TrimSpace(key)))
	for _, et := range AllEntityTypes {
		if candidate == et {
			return et, true
		}
	}
	return "", false
}

// Entities maps a subset of the entity slots to extracted values. Values are
// strings except quantity, which is an int. Absent keys mean "not mentioned";
// an empty string is never stored.
type Entities map[EntityType]interface{}

// Clone returns an independent copy so cached results stay frozen.
func (e Entities) Clone() Entities {
	if e == nil {
		return nil
	}
	out := make(Entities, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// IntentResult is the immutable output of one classification call.
// RawText carries the LLM's original reply and is empty on the fallback path.
type IntentResult struct {
	Intent     IntentType `json:"intent"`
	Confidence float64    `json:"confidence"`
	Entities   Entities   `json:"entities"`
	RawText    string     `json:"raw_text,omitempty"`
}

// Clone returns an independent copy of the result.
func (r *IntentResult) Clone() *IntentResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Entities = r.Entities.Clone()
	return &out
}

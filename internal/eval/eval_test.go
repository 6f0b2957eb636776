package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/extract"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/fallback"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

// ruleOnlyClassify resolves cases without any LLM leg, the floor the service
// guarantees when the endpoint is down.
func ruleOnlyClassify() ClassifyFunc {
	classifier := fallback.New()
	extractor := extract.New()
	return func(_ context.Context, text string) (*models.IntentResult, error) {
		intent, confidence := classifier.Classify(text)
		return &models.IntentResult{
			Intent:     intent,
			Confidence: confidence,
			Entities:   extractor.Extract(text),
		}, nil
	}
}

func TestDataset_CoversEveryIntent(t *testing.T) {
	seen := make(map[models.IntentType]int)
	for _, tc := range Dataset() {
		seen[tc.Intent]++
	}
	for _, intent := range models.AllIntents {
		assert.Positive(t, seen[intent], "dataset must cover %s", intent)
	}
	assert.Len(t, Dataset(), 15)
}

func TestEvaluate_RuleOnlyPathResolvesFullDataset(t *testing.T) {
	report := Evaluate(context.Background(), Dataset(), ruleOnlyClassify())

	assert.Equal(t, 15, report.Total)
	assert.Equal(t, 1.0, report.Accuracy, "rule path must resolve every labeled case")
	assert.Equal(t, 1.0, report.EntityAccuracy)
	assert.Equal(t, 1.0, report.MacroF1)
	assert.Equal(t, 1.0, report.MicroF1)
	assert.Zero(t, report.Errors)

	for _, intent := range models.AllIntents {
		m := report.PerClass[intent]
		assert.Equal(t, 1.0, m.F1, "f1 for %s", intent)
		assert.Positive(t, m.Support)
	}
}

func TestEvaluate_MisclassificationsCounted(t *testing.T) {
	// Predict grab_drink for everything: recall 1.0 for grab, 0 elsewhere.
	constant := func(_ context.Context, _ string) (*models.IntentResult, error) {
		return &models.IntentResult{Intent: models.IntentGrabDrink, Confidence: 0.3}, nil
	}

	report := Evaluate(context.Background(), Dataset(), constant)

	assert.Equal(t, 3, report.IntentCorrect)
	assert.InDelta(t, 0.2, report.Accuracy, 1e-9)

	grab := report.PerClass[models.IntentGrabDrink]
	assert.InDelta(t, 0.2, grab.Precision, 1e-9)
	assert.Equal(t, 1.0, grab.Recall)

	cancel := report.PerClass[models.IntentCancelOrder]
	assert.Zero(t, cancel.Recall)

	assert.Equal(t, 2, report.Confusion[models.IntentCancelOrder][models.IntentGrabDrink])
	assert.NotEmpty(t, report.misclassifications())
}

func TestEvaluate_ErrorsCountAgainstAccuracy(t *testing.T) {
	failing := func(_ context.Context, _ string) (*models.IntentResult, error) {
		return nil, errors.New("endpoint down")
	}

	report := Evaluate(context.Background(), Dataset(), failing)

	assert.Equal(t, 15, report.Errors)
	assert.Zero(t, report.Accuracy)
	assert.Zero(t, report.MicroF1)
}

func TestEntitiesMatch(t *testing.T) {
	expected := models.Entities{
		models.EntityDrinkName: "拿铁",
		models.EntityQuantity:  2,
	}

	assert.True(t, entitiesMatch(expected, models.Entities{
		models.EntityDrinkName:   "拿铁",
		models.EntityQuantity:    2,
		models.EntityTemperature: "热",
	}), "extra slots are allowed")

	assert.False(t, entitiesMatch(expected, models.Entities{
		models.EntityDrinkName: "拿铁",
	}), "missing slot fails")

	assert.False(t, entitiesMatch(expected, models.Entities{
		models.EntityDrinkName: "美式",
		models.EntityQuantity:  2,
	}), "wrong value fails")

	assert.True(t, entitiesMatch(models.Entities{}, nil))
}

func TestReport_String(t *testing.T) {
	report := Evaluate(context.Background(), Dataset(), ruleOnlyClassify())
	text := report.String()

	require.NotEmpty(t, text)
	assert.Contains(t, text, "intent accuracy: 100.0%")
	assert.Contains(t, text, "grab_drink")
}

package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

func TestClassify_AllIntentsReachable(t *testing.T) {
	classifier := New()

	// One literal utterance per intent that the rule table alone resolves.
	tests := []struct {
		input    string
		expected models.IntentType
	}{
		{"给我来一杯热拿铁", models.IntentGrabDrink},
		{"把这杯咖啡送到会议室", models.IntentDeliverDrink},
		{"推荐点提神的饮料", models.IntentRecommendDrink},
		{"算了，不要了", models.IntentCancelOrder},
		{"我的饮料好了吗", models.IntentQueryStatus},
		{"改成大杯的", models.IntentModifyOrder},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, confidence := classifier.Classify(tt.input)
			assert.Equal(t, tt.expected, intent)
			assert.LessOrEqual(t, confidence, MaxConfidence)
			assert.Greater(t, confidence, 0.0)
		})
	}
}

func TestClassify_EnglishUtterances(t *testing.T) {
	classifier := New()

	tests := []struct {
		input    string
		expected models.IntentType
	}{
		{"Give me two bottles of Coke", models.IntentGrabDrink},
		{"Please deliver the hot tea to the office", models.IntentDeliverDrink},
		{"What refreshing drinks do you have?", models.IntentRecommendDrink},
		{"Cancel my coffee order", models.IntentCancelOrder},
		{"Is my latte ready?", models.IntentQueryStatus},
		{"Change it to hot milk tea", models.IntentModifyOrder},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, _ := classifier.Classify(tt.input)
			assert.Equal(t, tt.expected, intent)
		})
	}
}

func TestClassify_SpecificPhrasingBeatsGrab(t *testing.T) {
	classifier := New()

	// "不要了" contains "要", a grab signal; cancellation must still win.
	intent, _ := classifier.Classify("算了，不要了")
	assert.Equal(t, models.IntentCancelOrder, intent)

	intent, _ = classifier.Classify("取消刚才的咖啡订单")
	assert.Equal(t, models.IntentCancelOrder, intent)
}

func TestClassify_NoSignalDefaultsToGrab(t *testing.T) {
	classifier := New()

	intent, confidence := classifier.Classify("呃")
	assert.Equal(t, models.IntentGrabDrink, intent)
	assert.InDelta(t, defaultConfidence, confidence, 1e-9)
}

func TestClassify_ConfidenceGrowsWithMatchDensity(t *testing.T) {
	classifier := New()

	_, single := classifier.Classify("要可乐")
	_, double := classifier.Classify("给我来一杯可乐")

	assert.Greater(t, double, single)
	assert.LessOrEqual(t, double, MaxConfidence)
}

func TestClassify_Deterministic(t *testing.T) {
	classifier := New()

	for i := 0; i < 3; i++ {
		intent, confidence := classifier.Classify("换成热的奶茶吧")
		assert.Equal(t, models.IntentModifyOrder, intent)
		assert.InDelta(t, 0.6, confidence, 1e-9)
	}
}

// internal/intent/fallback/rules.go
package fallback

import "github.com/stevehamwu/BeverageIntentRecognition/internal/models"

// rule is one keyword signal for an intent. Weight reflects how strongly the
// keyword distinguishes the intent from the others.
type rule struct {
	pattern string
	weight  float64
}

// intentRules binds an intent to its ordered signal list. The slice order of
// ruleTable is the tie-break priority: cancellation and modification phrasing
// is more specific and must not be shadowed by generic grab phrasing.
type intentRules struct {
	intent models.IntentType
	rules  []rule
}

var ruleTable = []intentRules{
	{
		intent: models.IntentCancelOrder,
		rules: []rule{
			{"取消", 1.0},
			{"算了", 1.0},
			{"不要了", 1.0},
			{"撤销", 1.0},
			{"不要", 0.8},
			{"cancel", 1.0},
			{"never mind", 1.0},
			{"forget it", 0.8},
		},
	},
	{
		intent: models.IntentModifyOrder,
		rules: []rule{
			{"改成", 1.0},
			{"换成", 1.0},
			{"修改", 1.0},
			{"改为", 1.0},
			{"变成", 0.8},
			{"change", 1.0},
			{"modify", 1.0},
			{"switch", 0.8},
		},
	},
	{
		intent: models.IntentQueryStatus,
		rules: []rule{
			{"好了吗", 1.0},
			{"做好了", 1.0},
			{"完成了", 0.8},
			{"状态", 0.8},
			{"进度", 0.8},
			{"怎么样了", 0.8},
			{"ready", 1.0},
			{"done yet", 1.0},
			{"status", 0.8},
		},
	},
	{
		intent: models.IntentDeliverDrink,
		rules: []rule{
			{"送到", 1.0},
			{"送给", 1.0},
			{"递送", 1.0},
			{"拿给", 0.8},
			{"送", 0.6},
			{"deliver", 1.0},
			{"bring", 0.8},
			{"take to", 0.8},
		},
	},
	{
		intent: models.IntentRecommendDrink,
		rules: []rule{
			{"推荐", 1.0},
			{"建议", 1.0},
			{"有没有", 0.8},
			{"什么", 0.6},
			{"提神", 0.6},
			{"清爽", 0.6},
			{"暖胃", 0.6},
			{"解腻", 0.6},
			{"recommend", 1.0},
			{"suggest", 1.0},
			{"refreshing", 0.6},
			{"energizing", 0.6},
		},
	},
	{
		intent: models.IntentGrabDrink,
		rules: []rule{
			{"来一杯", 1.0},
			{"来杯", 1.0},
			{"给我", 0.8},
			{"想喝", 0.8},
			{"喝", 0.6},
			{"要", 0.6},
			{"give me", 1.0},
			{"get me", 1.0},
			{"i want", 0.8},
		},
	},
}

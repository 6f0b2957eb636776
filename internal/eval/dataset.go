// Package eval measures classification quality against a labeled dataset:
// per-intent precision/recall/F1, macro and micro averages, and a confusion
// matrix. The embedded dataset is the regression baseline; the evaluate tool
// can also run it against a live endpoint.
package eval

import "github.com/stevehamwu/BeverageIntentRecognition/internal/models"

// Case is one labeled utterance. Entities lists the slots a correct
// classification must contain; extra extracted slots do not count against it.
type Case struct {
	Input    string
	Intent   models.IntentType
	Entities models.Entities
}

// Dataset returns the labeled regression cases, covering every intent.
func Dataset() []Case {
	return []Case{
		{
			Input:  "给我来一杯热拿铁",
			Intent: models.IntentGrabDrink,
			Entities: models.Entities{
				models.EntityDrinkName:   "拿铁",
				models.EntityTemperature: "热",
			},
		},
		{
			Input:  "来杯大杯冰美式",
			Intent: models.IntentGrabDrink,
			Entities: models.Entities{
				models.EntityDrinkName:   "美式",
				models.EntitySize:        "大杯",
				models.EntityTemperature: "冰",
			},
		},
		{
			Input:  "要两瓶可口可乐",
			Intent: models.IntentGrabDrink,
			Entities: models.Entities{
				models.EntityDrinkName: "可乐",
				models.EntityBrand:     "可口可乐",
				models.EntityQuantity:  2,
			},
		},
		{
			Input:  "把这杯咖啡送到会议室",
			Intent: models.IntentDeliverDrink,
			Entities: models.Entities{
				models.EntityDrinkName: "咖啡",
				models.EntityLocation:  "会议室",
			},
		},
		{
			Input:  "麻烦把热茶送到办公室",
			Intent: models.IntentDeliverDrink,
			Entities: models.Entities{
				models.EntityDrinkName:   "茶",
				models.EntityTemperature: "热",
				models.EntityLocation:    "办公室",
			},
		},
		{
			Input:  "推荐点提神的饮料",
			Intent: models.IntentRecommendDrink,
			Entities: models.Entities{
				models.EntityPreference: "提神",
			},
		},
		{
			Input:  "有什么清爽的饮品吗",
			Intent: models.IntentRecommendDrink,
			Entities: models.Entities{
				models.EntityPreference: "清爽",
			},
		},
		{
			Input:  "建议个解腻的茶类",
			Intent: models.IntentRecommendDrink,
			Entities: models.Entities{
				models.EntityPreference: "解腻",
				models.EntityDrinkName:  "茶",
			},
		},
		{
			Input:  "什么饮料比较暖胃",
			Intent: models.IntentRecommendDrink,
			Entities: models.Entities{
				models.EntityPreference: "暖胃",
			},
		},
		{
			Input:    "算了，不要了",
			Intent:   models.IntentCancelOrder,
			Entities: models.Entities{},
		},
		{
			Input:  "取消刚才的咖啡订单",
			Intent: models.IntentCancelOrder,
			Entities: models.Entities{
				models.EntityDrinkName: "咖啡",
			},
		},
		{
			Input:    "我的饮料好了吗",
			Intent:   models.IntentQueryStatus,
			Entities: models.Entities{},
		},
		{
			Input:  "拿铁做好了没有",
			Intent: models.IntentQueryStatus,
			Entities: models.Entities{
				models.EntityDrinkName: "拿铁",
			},
		},
		{
			Input:  "改成大杯的",
			Intent: models.IntentModifyOrder,
			Entities: models.Entities{
				models.EntitySize: "大杯",
			},
		},
		{
			Input:  "换成热的奶茶吧",
			Intent: models.IntentModifyOrder,
			Entities: models.Entities{
				models.EntityTemperature: "热",
				models.EntityDrinkName:   "奶茶",
			},
		},
	}
}

// internal/intent/extract/vocab.go
package extract

// vocabEntry maps a surface form to its canonical value. Entries are ordered
// longest-match-first within a family so "超大杯" wins over "大杯" and
// "美式咖啡" normalizes to "美式".
type vocabEntry struct {
	match     string
	canonical string
}

var drinkVocab = []vocabEntry{
	{"美式咖啡", "美式"},
	{"奶茶", "奶茶"},
	{"拿铁", "拿铁"},
	{"美式", "美式"},
	{"咖啡", "咖啡"},
	{"可乐", "可乐"},
	{"雪碧", "雪碧"},
	{"橙汁", "橙汁"},
	{"果汁", "果汁"},
	{"绿茶", "绿茶"},
	{"茶", "茶"},
	{"水", "水"},
	{"milk tea", "milk tea"},
	{"cappuccino", "cappuccino"},
	{"americano", "americano"},
	{"espresso", "espresso"},
	{"latte", "latte"},
	{"mocha", "mocha"},
	{"coffee", "coffee"},
	{"sprite", "sprite"},
	{"cola", "可乐"},
	{"coke", "可乐"},
	{"juice", "juice"},
	{"water", "water"},
	{"tea", "tea"},
}

var brandVocab = []vocabEntry{
	{"可口可乐", "可口可乐"},
	{"coca-cola", "可口可乐"},
	{"coca cola", "可口可乐"},
	{"星巴克", "星巴克"},
	{"starbucks", "星巴克"},
	{"百事", "百事"},
	{"pepsi", "百事"},
	{"雪碧", "雪碧"},
	{"sprite", "雪碧"},
}

var sizeVocab = []vocabEntry{
	{"超大杯", "超大杯"},
	{"大杯", "大杯"},
	{"中杯", "中杯"},
	{"小杯", "小杯"},
	{"瓶装", "瓶装"},
	{"extra large", "超大杯"},
	{"large", "大杯"},
	{"medium", "中杯"},
	{"small", "小杯"},
	{"bottle", "瓶装"},
}

var temperatureVocab = []vocabEntry{
	{"常温", "常温"},
	{"热", "热"},
	{"冰", "冰"},
	{"温", "温"},
	{"room temperature", "常温"},
	{"iced", "冰"},
	{"cold", "冰"},
	{"hot", "热"},
	{"warm", "温"},
}

var preferenceVocab = []vocabEntry{
	{"提神", "提神"},
	{"清爽", "清爽"},
	{"暖胃", "暖胃"},
	{"解腻", "解腻"},
	{"energizing", "提神"},
	{"refreshing", "清爽"},
	{"warming", "暖胃"},
}

var locationVocab = []vocabEntry{
	{"会议室", "会议室"},
	{"办公室", "办公室"},
	{"休息室", "休息室"},
	{"前台", "前台"},
	{"教室", "教室"},
	{"食堂", "食堂"},
	{"meeting room", "会议室"},
	{"office", "办公室"},
	{"reception", "前台"},
	{"lounge", "休息室"},
	{"classroom", "教室"},
	{"cafeteria", "食堂"},
}

// chineseNumerals handles quantities written as number words. "两" precedes
// "一" only for readability; the surface forms never overlap.
var chineseNumerals = []struct {
	word  string
	value int
}{
	{"两", 2},
	{"二", 2},
	{"三", 3},
	{"四", 4},
	{"五", 5},
	{"一", 1},
}

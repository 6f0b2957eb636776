// Package prompt assembles the chat-completion prompt for intent analysis:
// a system instruction enumerating the six intents and seven entity slots,
// a fixed ordered set of few-shot examples, and the user's text as the final
// turn. Building is deterministic so the result cache behaves predictably.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var examplesYAML []byte

// FewShotExample is a fixed demonstration pair embedded in every prompt.
type FewShotExample struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

const systemInstruction = `你是一个饮料意图理解系统。分析用户输入，识别意图类型并提取实体信息。

支持的意图类型:
- grab_drink: 抓取/获取饮料的请求
- deliver_drink: 递送饮料到指定位置
- recommend_drink: 饮料推荐请求
- cancel_order: 取消订单请求
- query_status: 查询饮料状态
- modify_order: 修改订单内容

实体类型:
- drink_name: 饮料名称（咖啡、茶、可乐等）
- brand: 品牌信息（可口可乐、雪碧等）
- size: 规格大小（大杯、中杯、小杯、瓶装）
- temperature: 温度要求（热、温、冰、常温）
- quantity: 数量
- location: 位置信息
- preference: 偏好需求（提神、解腻、清爽、暖胃等）

请以JSON格式输出，只包含intent、confidence(0-1)、entities三个字段。`

// Builder renders prompts from the embedded example set. It is immutable
// after construction and safe for concurrent use.
type Builder struct {
	examples     []FewShotExample
	examplesText string
}

// NewBuilder parses the embedded few-shot examples once at construction.
func NewBuilder() (*Builder, error) {
	var examples []FewShotExample
	if err := yaml.Unmarshal(examplesYAML, &examples); err != nil {
		return nil, fmt.Errorf("parse few-shot examples: %w", err)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("few-shot example set is empty")
	}

	var sb strings.Builder
	for _, example := range examples {
		fmt.Fprintf(&sb, "输入: %s\n输出: %s\n\n", example.Input, example.Output)
	}

	return &Builder{
		examples:     examples,
		examplesText: sb.String(),
	}, nil
}

// Examples returns the fixed example set, mainly for tests.
func (b *Builder) Examples() []FewShotExample {
	return b.examples
}

// Build renders the full prompt for one utterance. An empty context adds
// nothing; identical input always yields an identical string.
func (b *Builder) Build(userInput, context string) string {
	var sb strings.Builder
	sb.WriteString(systemInstruction)
	sb.WriteString("\n\n示例:\n")
	sb.WriteString(b.examplesText)

	if context != "" {
		fmt.Fprintf(&sb, "对话上下文: %s\n", context)
	}

	fmt.Fprintf(&sb, "现在分析这个输入:\n输入: %s\n输出:", userInput)
	return sb.String()
}

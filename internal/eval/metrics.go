// internal/eval/metrics.go
package eval

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

// ClassifyFunc resolves one utterance, e.g. Service.Classify with an empty
// conversation context, or an HTTP call against a running instance.
type ClassifyFunc func(ctx context.Context, text string) (*models.IntentResult, error)

// ClassMetrics holds per-intent quality numbers.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is the outcome of one evaluation run.
type Report struct {
	Total          int
	IntentCorrect  int
	EntityCorrect  int
	Errors         int
	Accuracy       float64
	EntityAccuracy float64
	MacroF1        float64
	MicroF1        float64
	PerClass       map[models.IntentType]ClassMetrics
	// Confusion counts predictions: Confusion[expected][predicted].
	Confusion map[models.IntentType]map[models.IntentType]int
}

// Evaluate runs every case through classify and aggregates the metrics.
// A classification error counts the case as wrong rather than aborting the
// run.
func Evaluate(ctx context.Context, cases []Case, classify ClassifyFunc) *Report {
	report := &Report{
		Total:     len(cases),
		PerClass:  make(map[models.IntentType]ClassMetrics),
		Confusion: make(map[models.IntentType]map[models.IntentType]int),
	}

	truePositives := make(map[models.IntentType]int)
	falsePositives := make(map[models.IntentType]int)
	falseNegatives := make(map[models.IntentType]int)
	support := make(map[models.IntentType]int)

	for _, tc := range cases {
		support[tc.Intent]++

		result, err := classify(ctx, tc.Input)
		if err != nil {
			report.Errors++
			falseNegatives[tc.Intent]++
			continue
		}

		if report.Confusion[tc.Intent] == nil {
			report.Confusion[tc.Intent] = make(map[models.IntentType]int)
		}
		report.Confusion[tc.Intent][result.Intent]++

		if result.Intent == tc.Intent {
			report.IntentCorrect++
			truePositives[tc.Intent]++
		} else {
			falseNegatives[tc.Intent]++
			falsePositives[result.Intent]++
		}

		if entitiesMatch(tc.Entities, result.Entities) {
			report.EntityCorrect++
		}
	}

	var macroF1Sum float64
	var tpSum, fpSum, fnSum int
	for _, intent := range models.AllIntents {
		tp := truePositives[intent]
		fp := falsePositives[intent]
		fn := falseNegatives[intent]
		tpSum, fpSum, fnSum = tpSum+tp, fpSum+fp, fnSum+fn

		precision := ratio(tp, tp+fp)
		recall := ratio(tp, tp+fn)
		report.PerClass[intent] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1(precision, recall),
			Support:   support[intent],
		}
		macroF1Sum += report.PerClass[intent].F1
	}

	if len(models.AllIntents) > 0 {
		report.MacroF1 = macroF1Sum / float64(len(models.AllIntents))
	}
	microPrecision := ratio(tpSum, tpSum+fpSum)
	microRecall := ratio(tpSum, tpSum+fnSum)
	report.MicroF1 = f1(microPrecision, microRecall)

	if report.Total > 0 {
		report.Accuracy = float64(report.IntentCorrect) / float64(report.Total)
		report.EntityAccuracy = float64(report.EntityCorrect) / float64(report.Total)
	}
	return report
}

// entitiesMatch checks that every expected slot is present with the expected
// value. Extra extracted slots are allowed.
func entitiesMatch(expected, actual models.Entities) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !reflect.DeepEqual(want, got) {
			return false
		}
	}
	return true
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// String renders the report for the evaluate tool.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cases: %d  intent accuracy: %.1f%%  entity accuracy: %.1f%%  errors: %d\n",
		r.Total, r.Accuracy*100, r.EntityAccuracy*100, r.Errors)
	fmt.Fprintf(&b, "macro F1: %.3f  micro F1: %.3f\n\n", r.MacroF1, r.MicroF1)

	b.WriteString("per intent:\n")
	for _, intent := range models.AllIntents {
		m := r.PerClass[intent]
		fmt.Fprintf(&b, "  %-16s precision %.3f  recall %.3f  f1 %.3f  support %d\n",
			intent, m.Precision, m.Recall, m.F1, m.Support)
	}

	misses := r.misclassifications()
	if len(misses) > 0 {
		b.WriteString("\nconfusion (expected -> predicted):\n")
		for _, line := range misses {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (r *Report) misclassifications() []string {
	var lines []string
	for expected, row := range r.Confusion {
		for predicted, count := range row {
			if expected != predicted {
				lines = append(lines, fmt.Sprintf("%s -> %s: %d", expected, predicted, count))
			}
		}
	}
	sort.Strings(lines)
	return lines
}

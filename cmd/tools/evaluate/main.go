// cmd/tools/evaluate/main.go
//
// Runs the labeled regression dataset through a classifier and prints the
// quality report. By default the offline rule path is measured; with -url
// the cases are sent to a running instance instead.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/eval"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/extract"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/fallback"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

func main() {
	url := flag.String("url", "", "base URL of a running instance (e.g. http://localhost:8080); empty runs the offline rule path")
	timeout := flag.Duration("timeout", 60*time.Second, "per-case timeout for live evaluation")
	flag.Parse()

	var classify eval.ClassifyFunc
	if *url != "" {
		classify = liveClassify(*url, *timeout)
		fmt.Printf("evaluating live endpoint %s\n\n", *url)
	} else {
		classify = ruleClassify()
		fmt.Print("evaluating offline rule path\n\n")
	}

	report := eval.Evaluate(context.Background(), eval.Dataset(), classify)
	fmt.Print(report.String())

	if report.Accuracy < 1.0 {
		os.Exit(1)
	}
}

func ruleClassify() eval.ClassifyFunc {
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

func liveClassify(baseURL string, timeout time.Duration) eval.ClassifyFunc {
	client := &http.Client{Timeout: timeout}
	return func(ctx context.Context, text string) (*models.IntentResult, error) {
		payload, err := json.Marshal(map[string]string{"text": text})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/v1/intent", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
		}

		var result models.IntentResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, err
		}
		return &result, nil
	}
}

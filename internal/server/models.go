// internal/server/models.go
package server

import "github.com/stevehamwu/BeverageIntentRecognition/internal/models"

// ClassifyRequest is one utterance to classify. Context is optional
// prior-dialog text.
type ClassifyRequest struct {
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
}

// BatchRequest carries up to max_batch_size utterances.
type BatchRequest struct {
	Items []ClassifyRequest `json:"items"`
}

// BatchItemResponse pairs one input with its result or per-item error.
type BatchItemResponse struct {
	Result *models.IntentResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
	LLM    string `json:"llm,omitempty"`
}

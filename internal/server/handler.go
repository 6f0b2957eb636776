// internal/server/handler.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/stevehamwu/BeverageIntentRecognition/internal/common/errors"
)

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError("request body is not valid JSON"))
		return
	}

	result, err := s.classifier.Classify(r.Context(), req.Text, req.Context)
	if err != nil {
		s.writeClassifyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError("request body is not valid JSON"))
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError("batch contains no items"))
		return
	}
	if len(req.Items) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError(
			fmt.Sprintf("batch size %d exceeds limit %d", len(req.Items), s.maxBatchSize)))
		return
	}

	resp := BatchResponse{Results: make([]BatchItemResponse, len(req.Items))}
	for i, item := range req.Items {
		result, err := s.classifier.Classify(r.Context(), item.Text, item.Context)
		if err != nil {
			resp.Results[i] = BatchItemResponse{Error: err.Error()}
			continue
		}
		resp.Results[i] = BatchItemResponse{Result: result}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if err := s.classifier.ClearCache(r.Context()); err != nil {
		s.logger.WithError(err).Error("cache clear failed", nil)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    string(apperrors.ErrCodeCacheUnavailable),
			Message: "cache clear failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleReady reports degraded, not failing, when the LLM endpoint is down:
// the fallback path keeps the service answering.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.classifier.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, healthResponse{Status: "degraded", LLM: "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", LLM: "ok"})
}

func (s *Server) writeClassifyError(w http.ResponseWriter, err error) {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) && apperrors.IsCallerError(stdErr.Code) {
		writeError(w, http.StatusBadRequest, stdErr)
		return
	}
	s.logger.WithError(err).Error("classification failed", nil)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Code:    "INTERNAL",
		Message: "classification failed",
	})
}

func writeError(w http.ResponseWriter, status int, stdErr *apperrors.StandardError) {
	writeJSON(w, status, errorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

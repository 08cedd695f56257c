package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mockview/internal/model"
	"mockview/internal/service"
)

// QuestionHandler handles question generation endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// Generate handles POST /v1/questions/generate
func (h *QuestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode == "" {
		req.Mode = model.GenerationInitial
	}
	if req.Mode == model.GenerationFollowUp && req.PreviousQuestion == "" {
		writeError(w, http.StatusBadRequest, "followup mode requires previousQuestion")
		return
	}

	result, err := h.questionSvc.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrGenerationFailed) {
			// The one degradation surfaced as actionable: retry.
			writeError(w, http.StatusServiceUnavailable, service.ErrGenerationFailed.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"mockview/internal/service"
)

// AnalysisHandler handles session analysis endpoints
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
}

func NewAnalysisHandler(analysisSvc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// Get handles GET /v1/sessions/{sessionId}/analysis
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	report, err := h.analysisSvc.Report(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrAnalysisInProgress) {
			writeError(w, http.StatusConflict, "analysis already in progress for this session")
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Invalidate handles DELETE /v1/sessions/{sessionId}/analysis
func (h *AnalysisHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.analysisSvc.Invalidate(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

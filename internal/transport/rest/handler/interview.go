package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"mockview/internal/model"
	"mockview/internal/service"
)

// InterviewHandler handles interview CRUD endpoints
type InterviewHandler struct {
	interviewSvc *service.InterviewService
}

func NewInterviewHandler(interviewSvc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// Create handles POST /v1/interviews
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var interview model.Interview
	if err := json.NewDecoder(r.Body).Decode(&interview); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.interviewSvc.Create(r.Context(), &interview); err != nil {
		if errors.Is(err, service.ErrInvalidInterview) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, interview)
}

// List handles GET /v1/interviews
func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.interviewSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if interviews == nil {
		interviews = []*model.Interview{}
	}

	writeJSON(w, http.StatusOK, interviews)
}

// Get handles GET /v1/interviews/{interviewId}
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["interviewId"]

	interview, err := h.interviewSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "interview not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, interview)
}

// Delete handles DELETE /v1/interviews/{interviewId}
func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["interviewId"]

	if err := h.interviewSvc.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

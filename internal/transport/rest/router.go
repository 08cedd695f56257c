package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mockview/internal/service"
	"mockview/internal/transport/rest/handler"
	"mockview/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	InterviewService *service.InterviewService
	QuestionService  *service.QuestionService
	SessionService   *service.SessionService
	AnalysisService  *service.AnalysisService
	Logger           *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	interviewHandler := handler.NewInterviewHandler(c.InterviewService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(c.Logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Interview definitions
	v1.HandleFunc("/interviews", interviewHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews", interviewHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/interviews/{interviewId}", interviewHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/interviews/{interviewId}", interviewHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/interviews/{interviewId}/sessions", sessionHandler.History).Methods("GET", "OPTIONS")

	// Question generation
	v1.HandleFunc("/questions/generate", questionHandler.Generate).Methods("POST", "OPTIONS")

	// Sessions and derived analysis
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}", sessionHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/analysis", analysisHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/analysis", analysisHandler.Invalidate).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

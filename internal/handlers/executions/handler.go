package executions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codequest-2025.net/internal/core/ports/primary"
	"gitlab.com/codequest-2025.net/internal/core/services/execution"
	"gitlab.com/codequest-2025.net/internal/domain"
	"gitlab.com/codequest-2025.net/internal/handlers/response"
)

// ExecutionHandler handles execution API requests
type ExecutionHandler struct {
	executionService execution.IExecutionService
	logger           primary.Logger
}

// NewExecutionHandler creates a new execution handler
func NewExecutionHandler(executionService execution.IExecutionService, logger primary.Logger) *ExecutionHandler {
	return &ExecutionHandler{
		executionService: executionService,
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes for ExecutionHandler
func (h *ExecutionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/executions", h.RunSubmission).Methods("POST")
	router.HandleFunc("/api/executions/{submissionId}", h.GetStatus).Methods("GET")
}

// RunSubmission handles synchronous execution requests
func (h *ExecutionHandler) RunSubmission(w http.ResponseWriter, r *http.Request) {
	var req RunSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	if req.ChallengeID == "" || req.Code == "" || req.Language == "" {
		response.WriteError(w, response.ErrorMessage{Message: "challengeId, code and language are required", StatusCode: http.StatusBadRequest})
		return
	}

	status, err := h.executionService.Run(r.Context(), domain.RunRequest{
		ChallengeID: req.ChallengeID,
		AuthorID:    req.UserID,
		Code:        req.Code,
		Language:    req.Language,
		Stdin:       req.Stdin,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExecutionInProgress):
			response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusConflict})
		case errors.Is(err, domain.ErrNoTestCases):
			response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusUnprocessableEntity})
		default:
			h.logger.Error("Failed to execute submission", "error", err)
			response.WriteError(w, response.ErrorMessage{Message: "Failed to execute submission", StatusCode: http.StatusInternalServerError})
		}
		return
	}

	response.WriteSuccess(w, status)
}

// GetStatus handles submission status retrieval requests
func (h *ExecutionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionIDStr := vars["submissionId"]

	submissionID, err := uuid.Parse(submissionIDStr)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", submissionIDStr)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid submission ID", StatusCode: http.StatusBadRequest})
		return
	}

	status, err := h.executionService.GetStatus(r.Context(), submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Submission not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get submission status", "submissionId", submissionID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get submission status", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, status)
}

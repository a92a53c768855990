package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks storage, cache, and queue backends)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.cacheClient != nil {
		if err := s.cacheClient.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unreachable")
			return
		}
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "task queue unreachable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Document endpoints

// handleIngestDocument godoc
// @Summary      Ingest document
// @Description  Register a document's extracted text and queue an index build. The document becomes askable once its status reaches "indexed".
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      driving.IngestRequest  true  "Document text and page map"
// @Success      202      {object}  domain.Document
// @Failure      400      {object}  ErrorResponse  "Invalid request body or empty document"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /documents [post]
func (s *Server) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	var req driving.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.indexingService.Ingest(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDocument) {
			writeError(w, http.StatusBadRequest, "document has no extractable text")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to ingest document")
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

// listDocumentsResponse is the paginated document list
// @Description Paginated document list
type listDocumentsResponse struct {
	Documents []*domain.Document `json:"documents"`
	Total     int                `json:"total" example:"42"`
}

// handleListDocuments godoc
// @Summary      List documents
// @Description  List ingested documents, newest first
// @Tags         Documents
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 20)"
// @Param        offset  query     int  false  "Offset (default 0)"
// @Success      200     {object}  listDocumentsResponse
// @Failure      500     {object}  ErrorResponse  "Internal server error"
// @Router       /documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	docs, err := s.docService.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	total, err := s.docService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, listDocumentsResponse{Documents: docs, Total: total})
}

// handleGetDocument godoc
// @Summary      Get document
// @Description  Get a document's metadata and indexing status
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get document")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleGetDocumentChunks godoc
// @Summary      Get document chunks
// @Description  Get a document with its indexed chunks. An unindexed document returns an empty chunk list.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.DocumentWithChunks
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id}/chunks [get]
func (s *Server) handleGetDocumentChunks(w http.ResponseWriter, r *http.Request) {
	result, err := s.docService.GetWithChunks(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get document chunks")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleDeleteDocument godoc
// @Summary      Delete document
// @Description  Remove a document, its content, its index, and any cached answers
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id} [delete]
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.docService.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleReindexDocument godoc
// @Summary      Reindex document
// @Description  Queue a fresh index build for an existing document, picking up current chunking and embedding settings
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      202  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id}/reindex [post]
func (s *Server) handleReindexDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.indexingService.Reindex(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to queue reindex")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// Question answering endpoints

// askRequest is a question against a document
// @Description Question against a document
type askRequest struct {
	Question  string `json:"question" example:"What is the notice period for terminating the lease?"`
	SkipCache bool   `json:"skip_cache,omitempty" example:"false"`
	Rerank    *bool  `json:"rerank,omitempty"`
}

// handleAsk godoc
// @Summary      Ask a question
// @Description  Answer a question against an indexed document. Questions the document does not cover return a non-grounded answer with low confidence, not an error.
// @Tags         QA
// @Accept       json
// @Produce      json
// @Param        id       path      string      true  "Document ID"
// @Param        request  body      askRequest  true  "Question"
// @Success      200      {object}  domain.AskResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body or malformed question"
// @Failure      404      {object}  ErrorResponse  "Document not found"
// @Failure      409      {object}  ErrorResponse  "Index not ready"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id}/ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := driving.AskOptions{
		SkipCache: req.SkipCache,
		Rerank:    req.Rerank,
	}

	result, err := s.qaService.Ask(r.Context(), r.PathValue("id"), req.Question, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedQuestion):
			writeError(w, http.StatusBadRequest, "malformed question")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		case errors.Is(err, domain.ErrIndexNotReady):
			writeError(w, http.StatusConflict, "document is not indexed yet")
		default:
			writeError(w, http.StatusInternalServerError, "failed to answer question")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// redFlagsResponse lists the detected risky clauses
// @Description Detected risky clauses
type redFlagsResponse struct {
	DocumentID string            `json:"document_id"`
	RedFlags   []*domain.RedFlag `json:"red_flags"`
}

// handleRedFlags godoc
// @Summary      Scan for red flags
// @Description  Scan the document text for risky clause patterns (unlimited liability, auto-renewal, unilateral changes, and similar)
// @Tags         QA
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  redFlagsResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id}/redflags [get]
func (s *Server) handleRedFlags(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	flags, err := s.qaService.RedFlags(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to scan document")
		return
	}

	if flags == nil {
		flags = []*domain.RedFlag{}
	}
	writeJSON(w, http.StatusOK, redFlagsResponse{DocumentID: id, RedFlags: flags})
}

// Task endpoints

// handleGetTask godoc
// @Summary      Get task status
// @Description  Get the status of a background task (index build or deletion)
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  ErrorResponse  "Task not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /tasks/{id} [get]
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskQueue.GetTask(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Settings endpoints

// handleGetRetrievalSettings godoc
// @Summary      Get retrieval settings
// @Description  Get the effective retrieval tuning parameters
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  domain.RetrievalSettings
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /settings/retrieval [get]
func (s *Server) handleGetRetrievalSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.GetRetrievalSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateRetrievalSettings godoc
// @Summary      Update retrieval settings
// @Description  Apply a partial update to retrieval tuning. Chunking changes take effect on the next index build; fusion and answering changes apply to the next question.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request  body      driving.UpdateRetrievalSettingsRequest  true  "Fields to update"
// @Success      200      {object}  domain.RetrievalSettings
// @Failure      400      {object}  ErrorResponse  "Invalid request body or settings"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /settings/retrieval [put]
func (s *Server) handleUpdateRetrievalSettings(w http.ResponseWriter, r *http.Request) {
	var req driving.UpdateRetrievalSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := s.settingsService.UpdateRetrievalSettings(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid settings")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleGetAISettings godoc
// @Summary      Get AI settings
// @Description  Get the current AI configuration. API keys are never returned.
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  domain.AISettings
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /settings/ai [get]
func (s *Server) handleGetAISettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.GetAISettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get AI settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateAISettings godoc
// @Summary      Update AI settings
// @Description  Update embedding and reranker configuration. Services are hot-reloaded; existing indexes keep working in lexical mode if embedding is removed.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request  body      driving.UpdateAISettingsRequest  true  "AI configuration"
// @Success      200      {object}  driving.AISettingsStatus
// @Failure      400      {object}  ErrorResponse  "Invalid request body or unknown provider"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /settings/ai [put]
func (s *Server) handleUpdateAISettings(w http.ResponseWriter, r *http.Request) {
	var req driving.UpdateAISettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := s.settingsService.UpdateAISettings(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProvider) {
			writeError(w, http.StatusBadRequest, "unknown provider")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update AI settings")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// handleGetAIStatus godoc
// @Summary      Get AI service status
// @Description  Report which AI services are loaded and the effective retrieval mode
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  driving.AISettingsStatus
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /settings/ai/status [get]
func (s *Server) handleGetAIStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.settingsService.GetAIStatus(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get AI status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// handleTestAIConnection godoc
// @Summary      Test AI connections
// @Description  Health-check the configured embedding and reranker services
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "An AI service is unreachable"
// @Router       /settings/ai/test [post]
func (s *Server) handleTestAIConnection(w http.ResponseWriter, r *http.Request) {
	if err := s.settingsService.TestConnection(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats endpoint

// statsResponse aggregates document and queue counts
// @Description Document and task queue statistics
type statsResponse struct {
	DocumentCount int                `json:"document_count" example:"42"`
	Queue         *driven.QueueStats `json:"queue"`
}

// handleGetStats godoc
// @Summary      Get statistics
// @Description  Get document counts and task queue statistics
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  statsResponse
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /stats [get]
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.docService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}

	queueStats, err := s.taskQueue.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get queue stats")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{DocumentCount: count, Queue: queueStats})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

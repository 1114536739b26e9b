package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/service"
)

// FeedbackHandler handles feedback CRUD and statistics.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	logger          zerolog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger.With().Str("handler", "feedback").Logger(),
	}
}

type feedbackRequest struct {
	ReviewerName   string  `json:"NomeAvaliador"`
	Rating         int     `json:"Estrelas"`
	Message        *string `json:"Mensagem"`
	SectorID       *int64  `json:"setorId"`
	CollaboratorID *int64  `json:"colaboradorId"`
}

func (req feedbackRequest) toInput() service.FeedbackInput {
	return service.FeedbackInput{
		ReviewerName:   req.ReviewerName,
		Rating:         req.Rating,
		Message:        req.Message,
		SectorID:       req.SectorID,
		CollaboratorID: req.CollaboratorID,
	}
}

type updateFeedbackRequest struct {
	ReviewerName   *string `json:"NomeAvaliador"`
	Rating         *int    `json:"Estrelas"`
	Message        *string `json:"Mensagem"`
	SectorID       *int64  `json:"setorId"`
	CollaboratorID *int64  `json:"colaboradorId"`
}

func (req updateFeedbackRequest) toInput() service.UpdateFeedbackInput {
	return service.UpdateFeedbackInput{
		ReviewerName:   req.ReviewerName,
		Rating:         req.Rating,
		Message:        req.Message,
		SectorID:       req.SectorID,
		CollaboratorID: req.CollaboratorID,
	}
}

// List handles GET /api/feedbacks.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, "feedback list", feedbacks, len(feedbacks))
}

// Stats handles GET /api/feedbacks/stats.
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.feedbackService.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "feedback stats", stats)
}

// Get handles GET /api/feedbacks/{id}.
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	f, err := h.feedbackService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "feedback found", f)
}

// Create handles POST /api/feedbacks.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	f, err := h.feedbackService.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "feedback created", f)
}

// Update handles PUT /api/feedbacks/{id}.
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	var req updateFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	f, err := h.feedbackService.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "feedback updated", f)
}

// Delete handles DELETE /api/feedbacks/{id}.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	if err := h.feedbackService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "feedback deleted"})
}

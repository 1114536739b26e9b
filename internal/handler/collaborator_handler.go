package handler

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/service"
)

// CollaboratorHandler handles collaborator roster CRUD.
type CollaboratorHandler struct {
	collabService *service.CollaboratorService
	logger        zerolog.Logger
}

// NewCollaboratorHandler creates a new CollaboratorHandler.
func NewCollaboratorHandler(collabService *service.CollaboratorService, logger zerolog.Logger) *CollaboratorHandler {
	return &CollaboratorHandler{
		collabService: collabService,
		logger:        logger.With().Str("handler", "collaborator").Logger(),
	}
}

type collaboratorRequest struct {
	IdentificationNumber string `json:"numeroidentificacao"`
	FullName             string `json:"nomecompleto"`
	Email                string `json:"email"`
}

func (req collaboratorRequest) toInput() service.CollaboratorInput {
	return service.CollaboratorInput{
		IdentificationNumber: req.IdentificationNumber,
		FullName:             req.FullName,
		Email:                req.Email,
	}
}

type updateCollaboratorRequest struct {
	IdentificationNumber *string `json:"numeroidentificacao"`
	FullName             *string `json:"nomecompleto"`
	Email                *string `json:"email"`
}

func (req updateCollaboratorRequest) toInput() service.UpdateCollaboratorInput {
	return service.UpdateCollaboratorInput{
		IdentificationNumber: req.IdentificationNumber,
		FullName:             req.FullName,
		Email:                req.Email,
	}
}

// List handles GET /api/colaboradores.
func (h *CollaboratorHandler) List(w http.ResponseWriter, r *http.Request) {
	collaborators, err := h.collabService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, "collaborator list", collaborators, len(collaborators))
}

// Stats handles GET /api/colaboradores/stats.
func (h *CollaboratorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	total, err := h.collabService.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "collaborator stats", map[string]interface{}{
		"total":   total,
		"message": fmt.Sprintf("%d collaborators registered", total),
	})
}

// Get handles GET /api/colaboradores/{id}.
func (h *CollaboratorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	c, err := h.collabService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "collaborator found", c)
}

// Create handles POST /api/colaboradores.
func (h *CollaboratorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req collaboratorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	c, err := h.collabService.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "collaborator created", c)
}

// Update handles PUT /api/colaboradores/{id}.
func (h *CollaboratorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	var req updateCollaboratorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	c, err := h.collabService.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "collaborator updated", c)
}

// Delete handles DELETE /api/colaboradores/{id}.
func (h *CollaboratorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	if err := h.collabService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "collaborator deleted"})
}

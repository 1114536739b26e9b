package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/service"
)

// SectorHandler handles sector CRUD.
type SectorHandler struct {
	sectorService *service.SectorService
	logger        zerolog.Logger
}

// NewSectorHandler creates a new SectorHandler.
func NewSectorHandler(sectorService *service.SectorService, logger zerolog.Logger) *SectorHandler {
	return &SectorHandler{
		sectorService: sectorService,
		logger:        logger.With().Str("handler", "sector").Logger(),
	}
}

type createSectorRequest struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
}

type updateSectorRequest struct {
	Name        *string `json:"nome"`
	Description *string `json:"descricao"`
	Active      *bool   `json:"ativo"`
}

// List handles GET /api/setores.
func (h *SectorHandler) List(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.sectorService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, "sector list", sectors, len(sectors))
}

// Get handles GET /api/setores/{id}.
func (h *SectorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	sector, err := h.sectorService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector found", sector)
}

// Create handles POST /api/setores.
func (h *SectorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSectorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	sector, err := h.sectorService.Create(r.Context(), service.CreateSectorInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "sector created", sector)
}

// Update handles PUT /api/setores/{id}.
func (h *SectorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	var req updateSectorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	sector, err := h.sectorService.Update(r.Context(), service.UpdateSectorInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector updated", sector)
}

// Delete handles DELETE /api/setores/{id}. Sectors are soft-deleted and
// refused while active users still belong to them.
func (h *SectorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid id"})
		return
	}

	if err := h.sectorService.Deactivate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "sector deactivated"})
}

package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/service"
)

// DashboardHandler serves the sector-scoped dashboard aggregates. Every
// endpoint derives its sector from the authenticated user, never from the
// request, so one sector can never read another's numbers.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Index handles GET /api/dashboard. It returns the acting user's identity.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	var sectorName string
	if user.Sector != nil {
		sectorName = user.Sector.Name
	}

	writeData(w, http.StatusOK, "dashboard", map[string]interface{}{
		"id":    user.ID,
		"nome":  user.Name,
		"setor": sectorName,
	})
}

// TeamCount handles GET /api/dashboard/colaboradores-setor. It counts the
// active user accounts in the caller's sector.
func (h *DashboardHandler) TeamCount(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	count, err := h.dashboardService.TeamSize(r.Context(), user.SectorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector team count", map[string]interface{}{
		"quantidadeColaboradoresSetor": count,
	})
}

// FeedbackCount handles GET /api/dashboard/feedbacks-setor.
func (h *DashboardHandler) FeedbackCount(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	count, err := h.dashboardService.CountFeedbacks(r.Context(), user.SectorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector feedback count", map[string]interface{}{
		"quantidadeFeedbacksSetor": count,
	})
}

// RatingCount handles GET /api/dashboard/avaliacoes-setor. It reports the
// same underlying count as FeedbackCount under the rating-oriented key.
func (h *DashboardHandler) RatingCount(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	count, err := h.dashboardService.CountFeedbacks(r.Context(), user.SectorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector rating count", map[string]interface{}{
		"quantidadeAvaliacoesSetor": count,
	})
}

// AverageRating handles GET /api/dashboard/media-desempenho-setor.
func (h *DashboardHandler) AverageRating(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	avg, err := h.dashboardService.AverageRating(r.Context(), user.SectorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector average rating", map[string]interface{}{
		"mediaDesempenhoSetor": avg,
	})
}

// AverageRatingThisMonth handles GET /api/dashboard/media-desempenho-setor-mes.
func (h *DashboardHandler) AverageRatingThisMonth(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	avg, err := h.dashboardService.AverageRatingThisMonth(r.Context(), user.SectorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector average rating this month", map[string]interface{}{
		"mediaDesempenhoSetorMes": avg,
	})
}

// Overview handles GET /api/dashboard/resumo. It bundles every sector
// aggregate into one payload.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	overview, err := h.dashboardService.GetOverview(r.Context(), user.SectorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "sector overview", overview)
}

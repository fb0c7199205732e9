package handlers

import (
	"net/http"
	"time"

	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/middleware"
	"networth_tracker/internal/models"
	"networth_tracker/internal/services"
)

// dateLayout is the ISO-8601 date format used at the API boundary.
const dateLayout = "2006-01-02"

// NetWorthHandler handles the summary, history and breakdown routes.
type NetWorthHandler struct {
	netWorth *services.NetWorthService
}

// NewNetWorthHandler creates a new NetWorthHandler.
func NewNetWorthHandler(netWorth *services.NetWorthService) *NetWorthHandler {
	return &NetWorthHandler{netWorth: netWorth}
}

// Summary returns the current net-worth summary.
func (h *NetWorthHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	summary, err := h.netWorth.Summary(user.ID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// breakdownResponse groups the two fixed-field breakdowns.
type breakdownResponse struct {
	Assets      models.AssetBreakdown     `json:"assets"`
	Liabilities models.LiabilityBreakdown `json:"liabilities"`
}

// Breakdown returns the asset and liability category breakdowns.
func (h *NetWorthHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	assets, liabilities, err := h.netWorth.Breakdown(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, breakdownResponse{Assets: assets, Liabilities: liabilities})
}

// History returns a synthetic net-worth series anchored at the live totals.
// Query parameters: start_date, end_date (ISO-8601, end defaults to today)
// and granularity (daily, weekly, monthly, quarterly).
func (h *NetWorthHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	q := r.URL.Query()

	granularity, err := models.ParseGranularity(q.Get("granularity"))
	if err != nil {
		respondError(w, apperrors.Validation(err.Error()))
		return
	}

	start, err := time.Parse(dateLayout, q.Get("start_date"))
	if err != nil {
		respondError(w, apperrors.Validation("start_date must be an ISO-8601 date"))
		return
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := q.Get("end_date"); raw != "" {
		end, err = time.Parse(dateLayout, raw)
		if err != nil {
			respondError(w, apperrors.Validation("end_date must be an ISO-8601 date"))
			return
		}
	}

	points, err := h.netWorth.History(user.ID, start, end, granularity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, points)
}

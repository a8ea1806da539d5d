package handlers

import (
	"net/http"

	"pagecraft/internal/middleware"
)

// Stats serves the dashboard summaries.
type Stats struct {
	stats StatsService
}

// NewStats creates a Stats handler group.
func NewStats(stats StatsService) *Stats {
	return &Stats{stats: stats}
}

// Dashboard handles GET /api/stats. Admins get platform-wide counts,
// everyone else counts over their own records.
func (h *Stats) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Dashboard(r.Context(), middleware.UserFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Admin handles GET /api/admin/stats.
func (h *Stats) Admin(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Admin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

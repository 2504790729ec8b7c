package web

import (
	"net/http"
	"time"

	"herbaldesk/internal/core"
)

// profitAndLoss handles GET /api/reports/pnl?filter=thisMonth or
// ?filter=custom&start=2026-08-01&end=2026-08-31.
func (h *Handler) profitAndLoss(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	q := r.URL.Query()

	filter := core.DateFilter(q.Get("filter"))
	if filter == "" {
		filter = core.FilterAll
	}

	var customStart, customEnd time.Time
	if filter == core.FilterCustom {
		var err error
		customStart, err = time.Parse("2006-01-02", q.Get("start"))
		if err != nil {
			writeError(w, r, "invalid start date, want YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		customEnd, err = time.Parse("2006-01-02", q.Get("end"))
		if err != nil {
			writeError(w, r, "invalid end date, want YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	report, err := h.svc.GetProfitAndLoss(r.Context(), *session, filter, customStart, customEnd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

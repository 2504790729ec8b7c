package web

import (
	"net/http"
	"strconv"
)

// listNotifications handles GET /api/notifications?limit=20.
func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, "invalid limit "+raw, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		limit = n
	}

	result, err := h.svc.ListNotifications(r.Context(), *session, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) unreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	count, err := h.svc.UnreadNotificationCount(r.Context(), *session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"unread_count": count})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.MarkNotificationRead(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "read"})
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if err := h.svc.MarkAllNotificationsRead(r.Context(), *session); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "read"})
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteNotification(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

package web

import (
	"net/http"

	"herbaldesk/internal/core"
)

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	result, err := h.svc.ListExpenses(r.Context(), *session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req core.ExpenseInput
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	created, err := h.svc.CreateExpense(r.Context(), *session, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, created)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req core.ExpenseInput
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	updated, err := h.svc.UpdateExpense(r.Context(), *session, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, updated)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteExpense(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

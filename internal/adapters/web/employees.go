package web

import (
	"net/http"

	"herbaldesk/internal/core"
)

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	result, err := h.svc.ListEmployees(r.Context(), *session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req core.EmployeeInput
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	created, err := h.svc.CreateEmployee(r.Context(), *session, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, created)
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req core.EmployeeInput
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	updated, err := h.svc.UpdateEmployee(r.Context(), *session, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, updated)
}

// updateEmployeePermissions handles PUT /api/employees/{id}/permissions.
func (h *Handler) updateEmployeePermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req core.Permissions
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.UpdateEmployeePermissions(r.Context(), *session, id, req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "updated"})
}

// setEmployeeStatus handles PUT /api/employees/{id}/status.
func (h *Handler) setEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Status core.EmployeeStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.SetEmployeeStatus(r.Context(), *session, id, req.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "updated"})
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteEmployee(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

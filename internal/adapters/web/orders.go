package web

import (
	"net/http"
	"strconv"

	"herbaldesk/internal/app"
	"herbaldesk/internal/core"
)

// listOrders handles GET /api/orders?status=pending&employee=3.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	var status *core.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := core.OrderStatus(raw)
		if !s.Valid() {
			writeError(w, r, "unknown order status "+raw, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		status = &s
	}

	var assignedTo *int
	if raw := r.URL.Query().Get("employee"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			writeError(w, r, "invalid employee "+raw, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		assignedTo = &id
	}

	result, err := h.svc.ListOrders(r.Context(), *session, status, assignedTo)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	result, err := h.svc.GetOrder(r.Context(), *session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req app.StaffOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	result, err := h.svc.CreateOrder(r.Context(), *session, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, result)
}

// updateOrderStatus handles PUT /api/orders/{id}/status.
func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Status core.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	result, err := h.svc.UpdateOrderStatus(r.Context(), *session, id, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// assignOrder handles PUT /api/orders/{id}/assign.
func (h *Handler) assignOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		EmployeeID int `json:"employee_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID < 1 {
		writeError(w, r, "invalid employee_id "+strconv.Itoa(req.EmployeeID), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.AssignOrder(r.Context(), *session, id, req.EmployeeID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "assigned"})
}

// addCallLog handles POST /api/orders/{id}/call-logs.
func (h *Handler) addCallLog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.CallLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	created, err := h.svc.AddCallLog(r.Context(), *session, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, created)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteOrder(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

package web

import (
	"net/http"

	"herbaldesk/internal/app"
)

// ── Products ─────────────────────────────────────────────────────────────────

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	result, err := h.svc.ListProducts(r.Context(), *session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	result, err := h.svc.GetProduct(r.Context(), *session, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	result, err := h.svc.CreateProduct(r.Context(), *session, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, result)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	result, err := h.svc.UpdateProduct(r.Context(), *session, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteProduct(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

// ── Categories ───────────────────────────────────────────────────────────────

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	result, err := h.svc.ListCategories(r.Context(), *session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req app.CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	created, err := h.svc.CreateCategory(r.Context(), *session, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, created)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	updated, err := h.svc.UpdateCategory(r.Context(), *session, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, updated)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteCategory(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

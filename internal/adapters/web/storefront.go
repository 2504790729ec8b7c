package web

import (
	"net/http"
	"strconv"

	"herbaldesk/internal/app"
)

// storefrontProducts handles GET /api/storefront/products — the public listing
// with offer-resolved prices. Supports ?category=ID and ?featured=true.
func (h *Handler) storefrontProducts(w http.ResponseWriter, r *http.Request) {
	var filter app.CatalogFilter
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			writeError(w, r, "invalid category "+raw, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		filter.CategoryID = &id
	}
	filter.FeaturedOnly = r.URL.Query().Get("featured") == "true"

	result, err := h.svc.BrowseCatalog(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// storefrontCategories handles GET /api/storefront/categories.
func (h *Handler) storefrontCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.BrowseCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// checkout handles POST /api/storefront/orders — a customer placing an order.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req app.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, result)
}

package web

import (
	"net/http"

	"herbaldesk/internal/app"
)

func (h *Handler) listOffers(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	result, err := h.svc.ListOffers(r.Context(), *session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req app.OfferRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	created, err := h.svc.CreateOffer(r.Context(), *session, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, created)
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.OfferRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session := sessionFromContext(r.Context())
	updated, err := h.svc.UpdateOffer(r.Context(), *session, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, updated)
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	session := sessionFromContext(r.Context())
	if err := h.svc.DeleteOffer(r.Context(), *session, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/models"
)

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) addDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.services.Documents.Add(r.Context(), chi.URLParam(r, "collection"), doc)
	if err != nil {
		log.Warn().Err(err).Str("func", "Handler.addDocument").Msg("error adding document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusCreated, models.AddDocumentResponse{ID: created.ID})
}

func (h *Handler) queryDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	query := models.DocumentQuery{
		NameFrom: r.URL.Query().Get("nameFrom"),
		NameTo:   r.URL.Query().Get("nameTo"),
	}
	if raw := r.URL.Query().Get("localId"); raw != "" {
		localID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid localId", http.StatusBadRequest)
			return
		}
		query.LocalID = localID
	}

	docs, err := h.services.Documents.Query(r.Context(), chi.URLParam(r, "collection"), query)
	if err != nil {
		log.Warn().Err(err).Str("func", "Handler.queryDocuments").Msg("error querying documents")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc, err := h.services.Documents.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		log.Warn().Err(err).Str("func", "Handler.getDocument").Msg("error getting document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) updateDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.services.Documents.Update(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"), doc)
	if err != nil {
		log.Warn().Err(err).Str("func", "Handler.updateDocument").Msg("error updating document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	err := h.services.Documents.Delete(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		log.Warn().Err(err).Str("func", "Handler.deleteDocument").Msg("error deleting document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/lazypower/rolodex/internal/store"
)

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	opts := store.ListInteractionsOpts{
		ContactID: int64(queryInt(r, "contactId")),
		Type:      r.URL.Query().Get("type"),
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	}

	interactions, err := s.db.ListInteractions(opts)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if interactions == nil {
		interactions = []store.Interaction{}
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (s *Server) handleCreateInteraction(w http.ResponseWriter, r *http.Request) {
	var interaction store.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if interaction.ContactID <= 0 {
		writeError(w, http.StatusBadRequest, "contactId required")
		return
	}

	if err := s.db.CreateInteraction(&interaction); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}

func (s *Server) handleUpdateInteraction(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "interactionID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid interaction id")
		return
	}

	existing, err := s.db.GetInteraction(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "interaction not found")
		return
	}

	updated := *existing
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	updated.ID = id
	updated.ContactID = existing.ContactID // interactions never move between contacts

	if err := s.db.UpdateInteraction(&updated); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInteraction(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "interactionID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid interaction id")
		return
	}

	if err := s.db.DeleteInteraction(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

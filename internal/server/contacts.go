package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/rolodex/internal/store"
)

func urlID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListContactsOpts{
		Search:   q.Get("search"),
		Sphere:   q.Get("sphere"),
		Category: q.Get("category"),
		Archived: q.Get("archived") == "true",
		Sort:     q.Get("sort"),
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
	}

	contacts, err := s.db.ListContacts(opts)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if contacts == nil {
		contacts = []store.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var contact store.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := store.ValidateContact(&contact); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.db.CreateContact(&contact); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contact, err := s.db.GetContact(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}

	recent, err := s.db.RecentInteractions(id, 10)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if recent == nil {
		recent = []store.Interaction{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contact":            contact,
		"recentInteractions": recent,
	})
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	existing, err := s.db.GetContact(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}

	// Partial update: decode onto a copy of the stored row so absent
	// fields keep their values.
	updated := *existing
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	updated.ID = id

	if err := store.ValidateContact(&updated); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.db.UpdateContact(&updated); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleArchiveContact(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := s.db.ArchiveContact(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleContactInteractions(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	interactions, err := s.db.ListInteractions(store.ListInteractionsOpts{
		ContactID: id,
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if interactions == nil {
		interactions = []store.Interaction{}
	}
	writeJSON(w, http.StatusOK, interactions)
}

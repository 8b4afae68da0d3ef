package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/rolodex/internal/engine"
	"github.com/lazypower/rolodex/internal/store"
)

// --- reminders ---

func (s *Server) handleDueContacts(w http.ResponseWriter, r *http.Request) {
	due, err := s.engine.DueContacts()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if due == nil {
		due = []engine.DueContact{}
	}
	writeJSON(w, http.StatusOK, due)
}

func (s *Server) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	window := queryInt(r, "days")

	birthdays, err := s.engine.UpcomingBirthdays(window)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if birthdays == nil {
		birthdays = []engine.UpcomingBirthday{}
	}
	writeJSON(w, http.StatusOK, birthdays)
}

func (s *Server) handleSnooze(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var req struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	contact, err := s.engine.Snooze(id, req.Days)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contact, err := s.engine.Dismiss(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// --- search ---

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.engine.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if results == nil {
		results = []store.Contact{}
	}
	writeJSON(w, http.StatusOK, results)
}

// --- tags ---

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.db.ListTags()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tags == nil {
		tags = []store.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var tag store.Tag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if tag.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := s.db.CreateTag(&tag); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleContactTags(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	tags, err := s.db.ContactTags(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tags == nil {
		tags = []store.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleAddContactTag(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var req struct {
		TagID int64 `json:"tagId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.TagID <= 0 {
		writeError(w, http.StatusBadRequest, "tagId required")
		return
	}

	if err := s.db.AddContactTag(id, req.TagID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (s *Server) handleRemoveContactTag(w http.ResponseWriter, r *http.Request) {
	contactID, ok := urlID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}
	tagID, ok := urlID(r, "tagID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := s.db.RemoveContactTag(contactID, tagID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- settings ---

func (s *Server) handleListSpheres(w http.ResponseWriter, r *http.Request) {
	settings, err := s.db.ListSphereSettings()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSphere(w http.ResponseWriter, r *http.Request) {
	// Sphere names contain spaces, so the path segment arrives escaped.
	sphere, err := url.PathUnescape(chi.URLParam(r, "sphere"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sphere")
		return
	}

	var req struct {
		DefaultFrequencyDays int `json:"defaultFrequencyDays"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DefaultFrequencyDays <= 0 {
		writeError(w, http.StatusBadRequest, "defaultFrequencyDays must be positive")
		return
	}

	if err := s.db.UpdateSphereFrequency(sphere, req.DefaultFrequencyDays); err != nil {
		writeStoreError(w, err)
		return
	}

	settings, err := s.db.ListSphereSettings()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	for _, setting := range settings {
		if setting.Sphere == sphere {
			writeJSON(w, http.StatusOK, setting)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

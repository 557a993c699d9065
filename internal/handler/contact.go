package handler

import "net/http"

// CreateContactRequest is the body of POST /contacts.
type CreateContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListContacts handles GET /contacts.
func (s *Server) ListContacts(w http.ResponseWriter, r *http.Request) {
	p, ok := pageParams(w, r)
	if !ok {
		return
	}
	contacts, total, err := s.contacts.ListPaged(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err, "contacts not found")
		return
	}
	writeJSON(w, http.StatusOK, newPage(contacts, p, total, contactToResponse))
}

// CreateContact handles POST /contacts.
func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	var body CreateContactRequest
	if !decodeBody(w, r, &body) {
		return
	}
	c, err := s.contacts.Create(r.Context(), body.Name, body.Email)
	if err != nil {
		s.writeServiceError(w, r, err, "contact not found")
		return
	}
	writeJSON(w, http.StatusCreated, contactToResponse(c))
}

// GetContact handles GET /contacts/{contactId}.
func (s *Server) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "contactId")
	if !ok {
		return
	}
	c, err := s.contacts.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, contactToResponse(c))
}

// DeleteContact handles DELETE /contacts/{contactId}.
func (s *Server) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "contactId")
	if !ok {
		return
	}
	if err := s.contacts.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "contact not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddContactTags handles POST /contacts/{contactId}/tags.
// Responds with the contact and its full tag set after the merge.
func (s *Server) AddContactTags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "contactId")
	if !ok {
		return
	}
	var body AddTagsRequest
	if !decodeBody(w, r, &body) {
		return
	}
	c, err := s.contacts.AddTags(r.Context(), id, body.TagIDs)
	if err != nil {
		s.writeServiceError(w, r, err, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, contactToResponse(c))
}

// RemoveContactTag handles DELETE /contacts/{contactId}/tags/{tagId}.
func (s *Server) RemoveContactTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "contactId")
	if !ok {
		return
	}
	tagID, ok := pathID(w, r, "tagId")
	if !ok {
		return
	}
	if err := s.contacts.RemoveTag(r.Context(), id, tagID); err != nil {
		s.writeServiceError(w, r, err, "tag not linked to contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

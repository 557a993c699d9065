package handler

import "net/http"

// CreateOrganizationRequest is the body of POST /organizations.
type CreateOrganizationRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// ListOrganizations handles GET /organizations.
func (s *Server) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	p, ok := pageParams(w, r)
	if !ok {
		return
	}
	orgs, total, err := s.orgs.ListPaged(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err, "organizations not found")
		return
	}
	writeJSON(w, http.StatusOK, newPage(orgs, p, total, organizationToResponse))
}

// CreateOrganization handles POST /organizations.
func (s *Server) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var body CreateOrganizationRequest
	if !decodeBody(w, r, &body) {
		return
	}
	o, err := s.orgs.Create(r.Context(), body.Name, body.Domain)
	if err != nil {
		s.writeServiceError(w, r, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusCreated, organizationToResponse(o))
}

// GetOrganization handles GET /organizations/{organizationId}.
func (s *Server) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "organizationId")
	if !ok {
		return
	}
	o, err := s.orgs.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, organizationToResponse(o))
}

// DeleteOrganization handles DELETE /organizations/{organizationId}.
func (s *Server) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "organizationId")
	if !ok {
		return
	}
	if err := s.orgs.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "organization not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddOrganizationTags handles POST /organizations/{organizationId}/tags.
// Responds with the organization and its full label set after the merge.
func (s *Server) AddOrganizationTags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "organizationId")
	if !ok {
		return
	}
	var body AddTagsRequest
	if !decodeBody(w, r, &body) {
		return
	}
	o, err := s.orgs.AddTags(r.Context(), id, body.TagIDs)
	if err != nil {
		s.writeServiceError(w, r, err, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, organizationToResponse(o))
}

// RemoveOrganizationTag handles DELETE /organizations/{organizationId}/tags/{tagId}.
func (s *Server) RemoveOrganizationTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "organizationId")
	if !ok {
		return
	}
	tagID, ok := pathID(w, r, "tagId")
	if !ok {
		return
	}
	if err := s.orgs.RemoveTag(r.Context(), id, tagID); err != nil {
		s.writeServiceError(w, r, err, "tag not linked to organization")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

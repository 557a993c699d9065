package handler

import "net/http"

// CreateTagRequest is the body of POST /tags.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListTags handles GET /tags.
// The optional ?q= query parameter filters tags by name prefix, ignoring case.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	prefix, ok := optionalQuery(w, r, "q")
	if !ok {
		return
	}
	labels, err := s.tags.List(r.Context(), prefix)
	if err != nil {
		s.writeServiceError(w, r, err, "tags not found")
		return
	}
	resp := make([]Tag, len(labels))
	for i, l := range labels {
		resp[i] = labelToResponse(l)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTag handles POST /tags.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var body CreateTagRequest
	if !decodeBody(w, r, &body) {
		return
	}
	l, err := s.tags.Create(r.Context(), body.Name, body.Color)
	if err != nil {
		s.writeServiceError(w, r, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusCreated, labelToResponse(l))
}

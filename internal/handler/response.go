package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
)

// Tag is the API representation of a tag. Color is only set for labels.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Contact is the API representation of a contact and its tags.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Organization is the API representation of an organization and its labels.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// Page is the envelope of every paged list response.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// AddTagsRequest is the body of POST /{resource}/{id}/tags.
type AddTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

func newPage[E, T any](items []E, p domain.PaginationParams, total int64, convert func(E) T) Page[T] {
	data := make([]T, len(items))
	for i, e := range items {
		data[i] = convert(e)
	}
	return Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:    p.Page,
			Limit:   p.Limit,
			Total:   total,
			HasMore: p.HasMore(total),
		},
	}
}

// tagsToResponse renders a tag set in its stable Values order.
func tagsToResponse[T domain.Tagger](set *domain.TagSet[T], convert func(T) Tag) []Tag {
	vals := set.Values()
	out := make([]Tag, len(vals))
	for i, t := range vals {
		out[i] = convert(t)
	}
	return out
}

func tagToResponse(t domain.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func labelToResponse(l domain.Label) Tag {
	resp := tagToResponse(l.Tag)
	resp.Color = l.Color
	return resp
}

func contactToResponse(c *domain.Contact) Contact {
	return Contact{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Tags:      tagsToResponse(c.Tags(), tagToResponse),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func organizationToResponse(o *domain.Organization) Organization {
	return Organization{
		ID:        o.ID,
		Name:      o.Name,
		Domain:    o.Domain,
		Tags:      tagsToResponse(o.Tags(), labelToResponse),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

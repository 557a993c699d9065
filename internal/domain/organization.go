package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a company or group in the contact book.
// Organizations are tagged with Labels rather than plain Tags; they share no
// base type with Contact beyond the embedded Entity.
type Organization struct {
	Entity
	Name      string
	Domain    string // e.g. "example.com"; optional
	CreatedAt time.Time
	UpdatedAt time.Time

	labels TagSet[Label]
}

// NewOrganization builds an organization with the given identity and no labels.
func NewOrganization(id uuid.UUID, name, domain string) *Organization {
	return &Organization{Entity: Entity{ID: id}, Name: name, Domain: domain}
}

// Tags returns the organization's own label set.
func (o *Organization) Tags() *TagSet[Label] {
	return &o.labels
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a person in the contact book.
// Contacts carry plain Tags. Use *Contact: the tag set is owned by the value
// and Tags hands out a pointer to it.
type Contact struct {
	Entity
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time

	tags TagSet[Tag]
}

// NewContact builds a contact with the given identity and no tags.
func NewContact(id uuid.UUID, name, email string) *Contact {
	return &Contact{Entity: Entity{ID: id}, Name: name, Email: email}
}

// Tags returns the contact's own tag set.
func (c *Contact) Tags() *TagSet[Tag] {
	return &c.tags
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tagger is the tag capability: an identifiable value with a display name.
// Entity families can define richer tag types as long as they satisfy it.
type Tagger interface {
	Identifiable[uuid.UUID]
	TagName() string
}

// Tag represents a user-defined label that can be applied to contacts.
// Tags are global, not owned by any entity. Identity is the ID; Name is free
// text and two tags may share a name.
type Tag struct {
	Entity
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagName returns the tag's display name.
func (t Tag) TagName() string {
	return t.Name
}

// Label is a tag with a display color, used by organizations.
// Color is either empty or a "#rrggbb" hex string.
type Label struct {
	Tag
	Color string `json:"color,omitempty"`
}

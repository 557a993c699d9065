// Package domain contains the core data types for the contact book.
// It defines the identity and tagging capabilities that entities opt into,
// and the concrete entities (contacts, organizations) that implement them.
// This package has no dependencies on other internal packages.
package domain

import (
	"reflect"

	"github.com/google/uuid"
)

// Identifiable is implemented by anything that has a stable identity.
// Identity is the only equality key: two values with the same identity are
// the same entity regardless of their other fields.
type Identifiable[TID comparable] interface {
	Identity() TID
}

// Entity is embedded by every domain object keyed by a random UUID.
// The ID is fixed once the entity is created or loaded from storage.
type Entity struct {
	ID uuid.UUID `json:"id"`
}

// Identity returns the entity's ID.
func (e Entity) Identity() uuid.UUID {
	return e.ID
}

// Equals reports whether other refers to the same entity as e.
// A nil other is never equal.
func (e Entity) Equals(other Identifiable[uuid.UUID]) bool {
	return SameIdentity[uuid.UUID](e, other)
}

// SameIdentity reports whether a and b have the same identity.
// It returns false when either side is nil, including a typed nil pointer,
// and never panics on absent values.
func SameIdentity[TID comparable](a, b Identifiable[TID]) bool {
	if IsNil(a) || IsNil(b) {
		return false
	}
	return a.Identity() == b.Identity()
}

// IsNil reports whether v is nil or a nil pointer, map, slice, func, chan or
// interface wrapped in a non-nil interface value.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

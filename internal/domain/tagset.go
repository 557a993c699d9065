package domain

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// TagSet is a set of tags keyed by tag identity.
// Adding a tag whose ID is already present is a no-op and the first inserted
// instance is kept. The zero value is an empty set ready to use.
//
// TagSet is not safe for concurrent use; callers that share an entity across
// goroutines must serialize access themselves.
type TagSet[T Tagger] struct {
	items map[uuid.UUID]T
}

// NewTagSet returns a set holding the given tags, duplicates collapsed.
func NewTagSet[T Tagger](tags ...T) *TagSet[T] {
	s := &TagSet[T]{}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add inserts tag and reports whether it was not already present.
// tag must not be nil.
func (s *TagSet[T]) Add(tag T) bool {
	id := tag.Identity()
	if _, ok := s.items[id]; ok {
		return false
	}
	if s.items == nil {
		s.items = make(map[uuid.UUID]T)
	}
	s.items[id] = tag
	return true
}

// Contains reports whether a tag with the given ID is in the set.
func (s *TagSet[T]) Contains(id uuid.UUID) bool {
	_, ok := s.items[id]
	return ok
}

// Get returns the tag with the given ID.
func (s *TagSet[T]) Get(id uuid.UUID) (T, bool) {
	t, ok := s.items[id]
	return t, ok
}

// Remove deletes the tag with the given ID and reports whether it was present.
func (s *TagSet[T]) Remove(id uuid.UUID) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Len returns the number of tags in the set.
func (s *TagSet[T]) Len() int {
	return len(s.items)
}

// Values returns the tags ordered by name, then by ID.
// The order is for presentation only; set membership has no order.
func (s *TagSet[T]) Values() []T {
	out := make([]T, 0, len(s.items))
	for _, t := range s.items {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := cmp.Compare(a.TagName(), b.TagName()); c != 0 {
			return c
		}
		return cmp.Compare(a.Identity().String(), b.Identity().String())
	})
	return out
}

// IDs returns the IDs of all tags in the set, sorted.
func (s *TagSet[T]) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return cmp.Compare(a.String(), b.String())
	})
	return out
}

// Names returns the display names of all tags, in Values order.
func (s *TagSet[T]) Names() []string {
	vals := s.Values()
	out := make([]string, len(vals))
	for i, t := range vals {
		out[i] = t.TagName()
	}
	return out
}

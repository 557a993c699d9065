// Package tagging implements tag assignment for any entity that declares the
// identity and taggable capabilities. Entity families do not share a base
// type: a contact, an organization or anything else can be tagged as long as
// its lookup and its type satisfy the constraints below.
package tagging

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
)

// Target is the constraint on taggable objects: they have an identity of type
// TID and own a set of TTag.
type Target[TID comparable, TTag domain.Tagger] interface {
	domain.Identifiable[TID]
	domain.Taggable[TTag]
}

// AddTags resolves the object with the given id through source and inserts
// every tag into its tag set. Tags already present (by identity) are left as
// they are, and duplicates within tags collapse to one member.
//
// All tags are validated before the lookup; a nil tag or one with a zero ID
// fails with domain.ErrValidation and nothing is mutated. An empty tags slice
// still performs the lookup. A missing object fails with domain.ErrNotFound,
// whether the lookup reports it or returns a nil object.
//
// The object is mutated in place. AddTags does not persist anything; callers
// that need the change stored should wrap source in a Recorder.
func AddTags[TID comparable, TObject Target[TID, TTag], TTag domain.Tagger](
	ctx context.Context,
	source CanGetByID[TID, TObject],
	id TID,
	tags []TTag,
) error {
	for i, tag := range tags {
		if err := validateTag(tag); err != nil {
			return fmt.Errorf("tagging.AddTags: tag %d: %w", i, err)
		}
	}

	target, err := resolve[TID, TObject, TTag](ctx, source, id)
	if err != nil {
		return fmt.Errorf("tagging.AddTags: %w", err)
	}

	set := target.Tags()
	for _, tag := range tags {
		set.Add(tag)
	}
	return nil
}

// RemoveTag resolves the object with the given id through source and removes
// the tag with identity tagID from its tag set.
// Returns domain.ErrNotFound if the object is missing or does not carry the tag.
func RemoveTag[TID comparable, TObject Target[TID, TTag], TTag domain.Tagger](
	ctx context.Context,
	source CanGetByID[TID, TObject],
	id TID,
	tagID uuid.UUID,
) error {
	target, err := resolve[TID, TObject, TTag](ctx, source, id)
	if err != nil {
		return fmt.Errorf("tagging.RemoveTag: %w", err)
	}
	if !target.Tags().Remove(tagID) {
		return fmt.Errorf("tagging.RemoveTag: tag %s: %w", tagID, domain.ErrNotFound)
	}
	return nil
}

// resolve looks up id and checks that the lookup honored its contract.
func resolve[TID comparable, TObject Target[TID, TTag], TTag domain.Tagger](
	ctx context.Context,
	source CanGetByID[TID, TObject],
	id TID,
) (TObject, error) {
	var zero TObject

	target, err := source.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if domain.IsNil(target) {
		return zero, fmt.Errorf("object %v: %w", id, domain.ErrNotFound)
	}
	if got := target.Identity(); got != id {
		return zero, fmt.Errorf("lookup for %v returned object %v", id, got)
	}
	return target, nil
}

func validateTag(tag domain.Tagger) error {
	if domain.IsNil(tag) {
		return fmt.Errorf("%w: tag is nil", domain.ErrValidation)
	}
	if tag.Identity() == uuid.Nil {
		return fmt.Errorf("%w: tag has no id", domain.ErrValidation)
	}
	return nil
}

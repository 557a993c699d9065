// Package service contains the business logic for the contact book.
// Services validate inputs, enforce business rules and orchestrate repo calls.
// Contact and organization services double as lookup capabilities, so the
// generic tagging operations run against them directly.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/repo"
	"github.com/pkordes/contactbook/internal/tagging"
)

// ContactService implements business logic for Contact operations.
type ContactService struct {
	contacts repo.ContactRepo
	tags     repo.TagRepo
}

// compile-time check: contacts can be looked up by the tagging package.
var _ tagging.CanGetByID[uuid.UUID, *domain.Contact] = (*ContactService)(nil)

// NewContactService constructs a ContactService backed by the provided repos.
func NewContactService(contacts repo.ContactRepo, tags repo.TagRepo) *ContactService {
	return &ContactService{contacts: contacts, tags: tags}
}

// Create validates and persists a new contact with a fresh random ID.
// Returns domain.ErrValidation if the name is blank or the email is malformed.
func (s *ContactService) Create(ctx context.Context, name, email string) (*domain.Contact, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := validateContact(name, email); err != nil {
		return nil, err
	}
	result, err := s.contacts.Create(ctx, domain.NewContact(uuid.New(), name, email))
	if err != nil {
		return nil, fmt.Errorf("service.ContactService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single contact with its tags.
// Returns domain.ErrNotFound if no contact with that ID exists.
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	result, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ContactService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of contacts and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ContactService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error) {
	contacts, total, err := s.contacts.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ContactService.ListPaged: %w", err)
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	return contacts, total, nil
}

// Delete removes a contact by ID.
// Returns domain.ErrNotFound if the contact does not exist.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ContactService.Delete: %w", err)
	}
	return nil
}

// AddTags adds the tags with the given IDs to a contact and stores the links.
// Tags the contact already carries are kept; repeated IDs collapse.
// Returns domain.ErrValidation for a nil or unknown tag ID, and
// domain.ErrNotFound if the contact does not exist.
func (s *ContactService) AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Contact, error) {
	labels, err := resolveLabels(ctx, s.tags, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("service.ContactService.AddTags: %w", err)
	}
	tags := make([]domain.Tag, len(labels))
	for i, l := range labels {
		tags[i] = l.Tag
	}

	rec := tagging.Record[uuid.UUID, *domain.Contact](s)
	if err := tagging.AddTags[uuid.UUID, *domain.Contact](ctx, rec, id, tags); err != nil {
		return nil, fmt.Errorf("service.ContactService.AddTags: %w", err)
	}

	contact, ok := rec.Resolved(id)
	if !ok {
		return nil, fmt.Errorf("service.ContactService.AddTags: %w", errUnrecorded)
	}
	if err := s.contacts.LinkTags(ctx, id, contact.Tags().IDs()); err != nil {
		return nil, fmt.Errorf("service.ContactService.AddTags: %w", err)
	}
	return contact, nil
}

// RemoveTag unlinks a tag from a contact.
// Returns domain.ErrNotFound if the contact does not exist or does not carry the tag.
func (s *ContactService) RemoveTag(ctx context.Context, id, tagID uuid.UUID) error {
	if err := tagging.RemoveTag[uuid.UUID, *domain.Contact, domain.Tag](ctx, s, id, tagID); err != nil {
		return fmt.Errorf("service.ContactService.RemoveTag: %w", err)
	}
	if err := s.contacts.UnlinkTag(ctx, id, tagID); err != nil {
		return fmt.Errorf("service.ContactService.RemoveTag: %w", err)
	}
	return nil
}

// validateContact enforces the rules common to every contact write.
//   - Name must be non-empty.
//   - Email, if set, must be a bare address ("ada@example.com").
func validateContact(name, email string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q is not a valid address", domain.ErrValidation, email)
	}
	return nil
}

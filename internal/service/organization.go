package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/repo"
	"github.com/pkordes/contactbook/internal/tagging"
)

// OrganizationService implements business logic for Organization operations.
// Organizations carry labels, so tags keep their color when attached.
type OrganizationService struct {
	orgs repo.OrganizationRepo
	tags repo.TagRepo
}

var _ tagging.CanGetByID[uuid.UUID, *domain.Organization] = (*OrganizationService)(nil)

// NewOrganizationService constructs an OrganizationService backed by the provided repos.
func NewOrganizationService(orgs repo.OrganizationRepo, tags repo.TagRepo) *OrganizationService {
	return &OrganizationService{orgs: orgs, tags: tags}
}

// Create validates and persists a new organization with a fresh random ID.
// Returns domain.ErrValidation if the name is blank or the domain is malformed.
func (s *OrganizationService) Create(ctx context.Context, name, domainName string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	domainName = strings.ToLower(strings.TrimSpace(domainName))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if domainName != "" && (!strings.Contains(domainName, ".") || strings.ContainsAny(domainName, " /@")) {
		return nil, fmt.Errorf("%w: domain %q is not a host name", domain.ErrValidation, domainName)
	}
	result, err := s.orgs.Create(ctx, domain.NewOrganization(uuid.New(), name, domainName))
	if err != nil {
		return nil, fmt.Errorf("service.OrganizationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single organization with its labels.
// Returns domain.ErrNotFound if no organization with that ID exists.
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	result, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.OrganizationService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of organizations and the total count.
// Always returns a non-nil slice.
func (s *OrganizationService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error) {
	orgs, total, err := s.orgs.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.OrganizationService.ListPaged: %w", err)
	}
	if orgs == nil {
		orgs = []*domain.Organization{}
	}
	return orgs, total, nil
}

// Delete removes an organization by ID.
func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orgs.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.OrganizationService.Delete: %w", err)
	}
	return nil
}

// AddTags adds the labels with the given IDs to an organization and stores the links.
// Error behavior matches ContactService.AddTags.
func (s *OrganizationService) AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Organization, error) {
	labels, err := resolveLabels(ctx, s.tags, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("service.OrganizationService.AddTags: %w", err)
	}

	rec := tagging.Record[uuid.UUID, *domain.Organization](s)
	if err := tagging.AddTags[uuid.UUID, *domain.Organization](ctx, rec, id, labels); err != nil {
		return nil, fmt.Errorf("service.OrganizationService.AddTags: %w", err)
	}

	org, ok := rec.Resolved(id)
	if !ok {
		return nil, fmt.Errorf("service.OrganizationService.AddTags: %w", errUnrecorded)
	}
	if err := s.orgs.LinkTags(ctx, id, org.Tags().IDs()); err != nil {
		return nil, fmt.Errorf("service.OrganizationService.AddTags: %w", err)
	}
	return org, nil
}

// RemoveTag unlinks a label from an organization.
func (s *OrganizationService) RemoveTag(ctx context.Context, id, tagID uuid.UUID) error {
	if err := tagging.RemoveTag[uuid.UUID, *domain.Organization, domain.Label](ctx, s, id, tagID); err != nil {
		return fmt.Errorf("service.OrganizationService.RemoveTag: %w", err)
	}
	if err := s.orgs.UnlinkTag(ctx, id, tagID); err != nil {
		return fmt.Errorf("service.OrganizationService.RemoveTag: %w", err)
	}
	return nil
}

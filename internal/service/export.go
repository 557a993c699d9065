package service

import (
	"context"
	"fmt"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/repo"
)

// ExportService assembles a flat export of every contact and organization
// with the names of their tags.
type ExportService struct {
	contacts repo.ContactRepo
	orgs     repo.OrganizationRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(contacts repo.ContactRepo, orgs repo.OrganizationRepo) *ExportService {
	return &ExportService{contacts: contacts, orgs: orgs}
}

// Export returns one row per contact, then one row per organization, each
// group ordered as the repos list them. It pages through the repos so a large
// book is never fetched in a single query.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}

	for p := firstExportPage(); ; p = p.Next() {
		contacts, total, err := s.contacts.ListPaged(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: contacts: %w", err)
		}
		for _, c := range contacts {
			rows = append(rows, domain.ExportRow{
				Kind:   domain.KindContact,
				ID:     c.ID.String(),
				Name:   c.Name,
				Detail: c.Email,
				Tags:   c.Tags().Names(),
			})
		}
		if len(contacts) == 0 || !p.HasMore(total) {
			break
		}
	}

	for p := firstExportPage(); ; p = p.Next() {
		orgs, total, err := s.orgs.ListPaged(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: organizations: %w", err)
		}
		for _, o := range orgs {
			rows = append(rows, domain.ExportRow{
				Kind:   domain.KindOrganization,
				ID:     o.ID.String(),
				Name:   o.Name,
				Detail: o.Domain,
				Tags:   o.Tags().Names(),
			})
		}
		if len(orgs) == 0 || !p.HasMore(total) {
			break
		}
	}

	return rows, nil
}

func firstExportPage() domain.PaginationParams {
	return domain.PaginationParams{Page: 1, Limit: domain.MaxPageLimit}
}

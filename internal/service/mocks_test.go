package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/repo"
)

// ---- mock ContactRepo --------------------------------------------------------

type mockContactRepo struct {
	create    func(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	getByID   func(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	linkTags  func(ctx context.Context, contactID uuid.UUID, tagIDs []uuid.UUID) error
	unlinkTag func(ctx context.Context, contactID, tagID uuid.UUID) error
}

func (m *mockContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	return m.create(ctx, c)
}
func (m *mockContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return m.getByID(ctx, id)
}
func (m *mockContactRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockContactRepo) LinkTags(ctx context.Context, contactID uuid.UUID, tagIDs []uuid.UUID) error {
	return m.linkTags(ctx, contactID, tagIDs)
}
func (m *mockContactRepo) UnlinkTag(ctx context.Context, contactID, tagID uuid.UUID) error {
	return m.unlinkTag(ctx, contactID, tagID)
}

// ---- mock OrganizationRepo ---------------------------------------------------

type mockOrgRepo struct {
	create    func(ctx context.Context, o *domain.Organization) (*domain.Organization, error)
	getByID   func(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	linkTags  func(ctx context.Context, orgID uuid.UUID, tagIDs []uuid.UUID) error
	unlinkTag func(ctx context.Context, orgID, tagID uuid.UUID) error
}

func (m *mockOrgRepo) Create(ctx context.Context, o *domain.Organization) (*domain.Organization, error) {
	return m.create(ctx, o)
}
func (m *mockOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return m.getByID(ctx, id)
}
func (m *mockOrgRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockOrgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockOrgRepo) LinkTags(ctx context.Context, orgID uuid.UUID, tagIDs []uuid.UUID) error {
	return m.linkTags(ctx, orgID, tagIDs)
}
func (m *mockOrgRepo) UnlinkTag(ctx context.Context, orgID, tagID uuid.UUID) error {
	return m.unlinkTag(ctx, orgID, tagID)
}

// ---- mock TagRepo --------------------------------------------------------------

type mockTagRepo struct {
	create  func(ctx context.Context, l domain.Label) (domain.Label, error)
	getMany func(ctx context.Context, ids []uuid.UUID) ([]domain.Label, error)
	list    func(ctx context.Context, prefix string) ([]domain.Label, error)
}

func (m *mockTagRepo) Create(ctx context.Context, l domain.Label) (domain.Label, error) {
	return m.create(ctx, l)
}
func (m *mockTagRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]domain.Label, error) {
	return m.getMany(ctx, ids)
}
func (m *mockTagRepo) List(ctx context.Context, prefix string) ([]domain.Label, error) {
	return m.list(ctx, prefix)
}

// compile-time checks
var (
	_ repo.ContactRepo      = (*mockContactRepo)(nil)
	_ repo.OrganizationRepo = (*mockOrgRepo)(nil)
	_ repo.TagRepo          = (*mockTagRepo)(nil)
)

// ---- fixtures --------------------------------------------------------------------

func label(name, color string) domain.Label {
	return domain.Label{
		Tag:   domain.Tag{Entity: domain.Entity{ID: uuid.New()}, Name: name},
		Color: color,
	}
}

// tagCatalog returns a mockTagRepo whose GetMany serves the given labels by
// ID, failing with domain.ErrNotFound for anything else.
func tagCatalog(labels ...domain.Label) *mockTagRepo {
	byID := make(map[uuid.UUID]domain.Label, len(labels))
	for _, l := range labels {
		byID[l.ID] = l
	}
	return &mockTagRepo{
		getMany: func(_ context.Context, ids []uuid.UUID) ([]domain.Label, error) {
			out := make([]domain.Label, 0, len(ids))
			for _, id := range ids {
				l, ok := byID[id]
				if !ok {
					return nil, domain.ErrNotFound
				}
				out = append(out, l)
			}
			return out, nil
		},
	}
}

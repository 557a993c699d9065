package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/service"
)

// storedOrgs mirrors storedContacts for a single stored organization.
func storedOrgs(id uuid.UUID, catalog map[uuid.UUID]domain.Label, linked map[uuid.UUID]bool) *mockOrgRepo {
	return &mockOrgRepo{
		getByID: func(_ context.Context, got uuid.UUID) (*domain.Organization, error) {
			if got != id {
				return nil, domain.ErrNotFound
			}
			o := domain.NewOrganization(id, "Acme", "acme.test")
			for tagID := range linked {
				o.Tags().Add(catalog[tagID])
			}
			return o, nil
		},
		linkTags: func(_ context.Context, orgID uuid.UUID, tagIDs []uuid.UUID) error {
			if orgID != id {
				return domain.ErrNotFound
			}
			for _, t := range tagIDs {
				linked[t] = true
			}
			return nil
		},
	}
}

func TestOrganizationService_Create_NormalizesDomain(t *testing.T) {
	var captured *domain.Organization
	svc := service.NewOrganizationService(&mockOrgRepo{
		create: func(_ context.Context, o *domain.Organization) (*domain.Organization, error) {
			captured = o
			return o, nil
		},
	}, nil)

	_, err := svc.Create(context.Background(), "Acme", " ACME.Test ")

	require.NoError(t, err)
	assert.Equal(t, "acme.test", captured.Domain)
}

func TestOrganizationService_Create_Validation(t *testing.T) {
	cases := []struct {
		name, orgName, domainName string
	}{
		{"blank name", " ", "acme.test"},
		{"no dot", "Acme", "localhost"},
		{"email instead of domain", "Acme", "info@acme.test"},
		{"url instead of domain", "Acme", "acme.test/about"},
	}
	svc := service.NewOrganizationService(&mockOrgRepo{}, nil)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.orgName, tc.domainName)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestOrganizationService_ListPaged_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewOrganizationService(&mockOrgRepo{
		listPaged: func(context.Context, domain.PaginationParams) ([]*domain.Organization, int64, error) {
			return nil, 0, nil
		},
	}, nil)

	got, _, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestOrganizationService_AddTags_KeepsLabelColor(t *testing.T) {
	id := uuid.New()
	partner := label("partner", "#336699")
	linked := map[uuid.UUID]bool{}
	svc := service.NewOrganizationService(storedOrgs(id, catalogOf(partner), linked), tagCatalog(partner))

	got, err := svc.AddTags(context.Background(), id, []uuid.UUID{partner.ID, partner.ID})

	require.NoError(t, err)
	require.Equal(t, 1, got.Tags().Len(), "repeated IDs collapse")
	l, ok := got.Tags().Get(partner.ID)
	require.True(t, ok)
	assert.Equal(t, "#336699", l.Color)
	assert.True(t, linked[partner.ID])
}

func TestOrganizationService_AddTags_NotFound(t *testing.T) {
	partner := label("partner", "")
	svc := service.NewOrganizationService(storedOrgs(uuid.New(), catalogOf(partner), map[uuid.UUID]bool{}), tagCatalog(partner))

	_, err := svc.AddTags(context.Background(), uuid.New(), []uuid.UUID{partner.ID})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrganizationService_RemoveTag(t *testing.T) {
	id := uuid.New()
	partner := label("partner", "")
	repo := storedOrgs(id, catalogOf(partner), map[uuid.UUID]bool{partner.ID: true})
	called := false
	repo.unlinkTag = func(context.Context, uuid.UUID, uuid.UUID) error {
		called = true
		return nil
	}
	svc := service.NewOrganizationService(repo, nil)

	require.NoError(t, svc.RemoveTag(context.Background(), id, partner.ID))
	assert.True(t, called)
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/contactbook/internal/domain"
)

// OrganizationRepo defines the persistence operations for Organizations and the
// organization_tags join table. Organizations returned by reads carry their labels.
type OrganizationRepo interface {
	// Create inserts a new organization using the caller-supplied ID and returns the
	// persisted record (with created_at and updated_at populated).
	Create(ctx context.Context, o *domain.Organization) (*domain.Organization, error)

	// GetByID retrieves a single organization and its labels.
	// Returns domain.ErrNotFound if no organization with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	// ListPaged returns one page of organizations ordered by name, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error)

	// Delete removes an organization and its tag links.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// LinkTags links tags to an organization. Idempotent: existing links are kept.
	LinkTags(ctx context.Context, orgID uuid.UUID, tagIDs []uuid.UUID) error

	// UnlinkTag removes one tag link.
	// Returns domain.ErrNotFound if the tag is not linked to the organization.
	UnlinkTag(ctx context.Context, orgID, tagID uuid.UUID) error
}

// pgOrganizationRepo is the Postgres implementation of OrganizationRepo.
type pgOrganizationRepo struct {
	db db
}

// NewOrganizationRepo constructs an OrganizationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewOrganizationRepo(db db) OrganizationRepo {
	return &pgOrganizationRepo{db: db}
}

func (r *pgOrganizationRepo) Create(ctx context.Context, o *domain.Organization) (*domain.Organization, error) {
	const q = `
		INSERT INTO organizations (id, name, domain)
		VALUES (@id, @name, @domain)
		RETURNING id, name, domain, created_at, updated_at`

	args := pgx.NamedArgs{"id": o.ID, "name": o.Name, "domain": o.Domain}
	result, err := scanOrganization(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return nil, fmt.Errorf("repo.OrganizationRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgOrganizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	const q = `
		SELECT id, name, domain, created_at, updated_at
		FROM organizations
		WHERE id = @id`

	o, err := scanOrganization(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("repo.OrganizationRepo.GetByID: %w", err)
	}
	if err := r.loadTags(ctx, o); err != nil {
		return nil, fmt.Errorf("repo.OrganizationRepo.GetByID: tags: %w", err)
	}
	return o, nil
}

func (r *pgOrganizationRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM organizations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.OrganizationRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, name, domain, created_at, updated_at
		FROM organizations
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.OrganizationRepo.ListPaged: %w", err)
	}
	organizations := []*domain.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("repo.OrganizationRepo.ListPaged: scan: %w", err)
		}
		organizations = append(organizations, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.OrganizationRepo.ListPaged: rows: %w", err)
	}

	// Tags are loaded after the cursor is closed: a pgx.Tx cannot run a second
	// query while rows are still open.
	ids := make([]uuid.UUID, len(organizations))
	for i, o := range organizations {
		ids[i] = o.ID
	}
	linked, err := organizationTagLinks.listMany(ctx, r.db, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.OrganizationRepo.ListPaged: tags: %w", err)
	}
	for _, o := range organizations {
		for _, l := range linked[o.ID] {
			o.Tags().Add(l)
		}
	}
	return organizations, total, nil
}

func (r *pgOrganizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.OrganizationRepo.Delete: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("repo.OrganizationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgOrganizationRepo) LinkTags(ctx context.Context, orgID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := organizationTagLinks.link(ctx, r.db, orgID, tagIDs); err != nil {
		return fmt.Errorf("repo.OrganizationRepo.LinkTags: %w", err)
	}
	return nil
}

func (r *pgOrganizationRepo) UnlinkTag(ctx context.Context, orgID, tagID uuid.UUID) error {
	if err := organizationTagLinks.unlink(ctx, r.db, orgID, tagID); err != nil {
		return fmt.Errorf("repo.OrganizationRepo.UnlinkTag: %w", err)
	}
	return nil
}

// loadTags fills o's label set from organization_tags.
func (r *pgOrganizationRepo) loadTags(ctx context.Context, o *domain.Organization) error {
	labels, err := organizationTagLinks.list(ctx, r.db, o.ID)
	if err != nil {
		return err
	}
	for _, l := range labels {
		o.Tags().Add(l)
	}
	return nil
}

// scanOrganization maps a single organizations row into a *domain.Organization with no labels.
func scanOrganization(s scanner) (*domain.Organization, error) {
	var (
		o  domain.Organization
		id pgtype.UUID
	)
	err := s.Scan(&id, &o.Name, &o.Domain, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.ID = uuid.UUID(id.Bytes)
	return &o, nil
}

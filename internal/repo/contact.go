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

// ContactRepo defines the persistence operations for Contacts and the
// contact_tags join table. Contacts returned by reads carry their tags.
type ContactRepo interface {
	// Create inserts a new contact using the caller-supplied ID and returns the
	// persisted record (with created_at and updated_at populated).
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)

	// GetByID retrieves a single contact and its tags.
	// Returns domain.ErrNotFound if no contact with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)

	// ListPaged returns one page of contacts ordered by name, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error)

	// Delete removes a contact and its tag links.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// LinkTags links tags to a contact. Idempotent: existing links are kept.
	LinkTags(ctx context.Context, contactID uuid.UUID, tagIDs []uuid.UUID) error

	// UnlinkTag removes one tag link.
	// Returns domain.ErrNotFound if the tag is not linked to the contact.
	UnlinkTag(ctx context.Context, contactID, tagID uuid.UUID) error
}

// pgContactRepo is the Postgres implementation of ContactRepo.
type pgContactRepo struct {
	db db
}

// NewContactRepo constructs a ContactRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewContactRepo(db db) ContactRepo {
	return &pgContactRepo{db: db}
}

func (r *pgContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	const q = `
		INSERT INTO contacts (id, name, email)
		VALUES (@id, @name, @email)
		RETURNING id, name, email, created_at, updated_at`

	args := pgx.NamedArgs{"id": c.ID, "name": c.Name, "email": c.Email}
	result, err := scanContact(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return nil, fmt.Errorf("repo.ContactRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	const q = `
		SELECT id, name, email, created_at, updated_at
		FROM contacts
		WHERE id = @id`

	c, err := scanContact(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("repo.ContactRepo.GetByID: %w", err)
	}
	if err := r.loadTags(ctx, c); err != nil {
		return nil, fmt.Errorf("repo.ContactRepo.GetByID: tags: %w", err)
	}
	return c, nil
}

func (r *pgContactRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ContactRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, name, email, created_at, updated_at
		FROM contacts
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ContactRepo.ListPaged: %w", err)
	}
	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("repo.ContactRepo.ListPaged: scan: %w", err)
		}
		contacts = append(contacts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ContactRepo.ListPaged: rows: %w", err)
	}

	// Tags are loaded after the cursor is closed: a pgx.Tx cannot run a second
	// query while rows are still open.
	ids := make([]uuid.UUID, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	linked, err := contactTagLinks.listMany(ctx, r.db, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ContactRepo.ListPaged: tags: %w", err)
	}
	for _, c := range contacts {
		for _, l := range linked[c.ID] {
			c.Tags().Add(l.Tag)
		}
	}
	return contacts, total, nil
}

func (r *pgContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ContactRepo.Delete: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("repo.ContactRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgContactRepo) LinkTags(ctx context.Context, contactID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := contactTagLinks.link(ctx, r.db, contactID, tagIDs); err != nil {
		return fmt.Errorf("repo.ContactRepo.LinkTags: %w", err)
	}
	return nil
}

func (r *pgContactRepo) UnlinkTag(ctx context.Context, contactID, tagID uuid.UUID) error {
	if err := contactTagLinks.unlink(ctx, r.db, contactID, tagID); err != nil {
		return fmt.Errorf("repo.ContactRepo.UnlinkTag: %w", err)
	}
	return nil
}

// loadTags fills c's tag set from contact_tags.
func (r *pgContactRepo) loadTags(ctx context.Context, c *domain.Contact) error {
	labels, err := contactTagLinks.list(ctx, r.db, c.ID)
	if err != nil {
		return err
	}
	for _, l := range labels {
		c.Tags().Add(l.Tag)
	}
	return nil
}

// scanContact maps a single contacts row into a *domain.Contact with no tags.
func scanContact(s scanner) (*domain.Contact, error) {
	var (
		c  domain.Contact
		id pgtype.UUID
	)
	err := s.Scan(&id, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return &c, nil
}

package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/contactbook/internal/domain"
)

// TagRepo defines the persistence operations for Tags.
// Every stored tag has a color (possibly empty), so reads return Labels;
// callers that tag contacts use the embedded Tag.
type TagRepo interface {
	// Create inserts a tag using the caller-supplied ID and returns the
	// persisted record (with created_at populated).
	Create(ctx context.Context, l domain.Label) (domain.Label, error)

	// GetMany returns the tags with the given IDs, in the order requested.
	// Duplicate IDs yield duplicate entries. Returns domain.ErrNotFound if any
	// ID does not exist.
	GetMany(ctx context.Context, ids []uuid.UUID) ([]domain.Label, error)

	// List returns all tags whose name starts with prefix (case-insensitive),
	// ordered by name. If prefix is empty, all tags are returned.
	List(ctx context.Context, prefix string) ([]domain.Label, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

func (r *pgTagRepo) Create(ctx context.Context, l domain.Label) (domain.Label, error) {
	const q = `
		INSERT INTO tags (id, name, color)
		VALUES (@id, @name, @color)
		RETURNING id, name, color, created_at`

	args := pgx.NamedArgs{"id": l.ID, "name": l.Name, "color": l.Color}
	result, err := scanLabel(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Label{}, fmt.Errorf("repo.TagRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTagRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]domain.Label, error) {
	if len(ids) == 0 {
		return []domain.Label{}, nil
	}

	const q = `
		SELECT id, name, color, created_at
		FROM tags
		WHERE id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.GetMany: %w", err)
	}
	found, err := collectLabels(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.GetMany: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Label, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	out := make([]domain.Label, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("repo.TagRepo.GetMany: tag %s: %w", id, domain.ErrNotFound)
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *pgTagRepo) List(ctx context.Context, prefix string) ([]domain.Label, error) {
	const q = `
		SELECT id, name, color, created_at
		FROM tags
		WHERE lower(name) LIKE lower(@prefix) || '%'
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	labels, err := collectLabels(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	return labels, nil
}

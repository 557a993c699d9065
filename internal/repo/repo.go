// Package repo contains all storage access for the contact book.
// Each resource has its own file with an interface and a Postgres
// implementation; memory.go provides an in-process implementation of the same
// interfaces. No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/contactbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// tagLinks names the join table and owner column linking one entity family to tags.
type tagLinks struct {
	table    string
	ownerCol string
}

var (
	contactTagLinks      = tagLinks{table: "contact_tags", ownerCol: "contact_id"}
	organizationTagLinks = tagLinks{table: "organization_tags", ownerCol: "organization_id"}
)

// link inserts one row per tag. Idempotent via ON CONFLICT DO NOTHING.
func (l tagLinks) link(ctx context.Context, db db, ownerID uuid.UUID, tagIDs []uuid.UUID) error {
	q := fmt.Sprintf(`
		INSERT INTO %s (%s, tag_id)
		VALUES (@owner_id, @tag_id)
		ON CONFLICT DO NOTHING`, l.table, l.ownerCol)

	for _, tagID := range tagIDs {
		if _, err := db.Exec(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "tag_id": tagID}); err != nil {
			return mapPgError(err)
		}
	}
	return nil
}

// unlink deletes a single link. Returns domain.ErrNotFound if it did not exist.
func (l tagLinks) unlink(ctx context.Context, db db, ownerID, tagID uuid.UUID) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE %s = @owner_id AND tag_id = @tag_id`, l.table, l.ownerCol)

	ct, err := db.Exec(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "tag_id": tagID})
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// list returns the tags linked to an owner, ordered by name.
func (l tagLinks) list(ctx context.Context, db db, ownerID uuid.UUID) ([]domain.Label, error) {
	q := fmt.Sprintf(`
		SELECT t.id, t.name, t.color, t.created_at
		FROM tags t
		JOIN %s lt ON lt.tag_id = t.id
		WHERE lt.%s = @owner_id
		ORDER BY t.name, t.id`, l.table, l.ownerCol)

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	return collectLabels(rows)
}

// listMany returns the tags linked to each of ownerIDs in one query, keyed by
// owner. Owners without tags are absent from the map.
func (l tagLinks) listMany(ctx context.Context, db db, ownerIDs []uuid.UUID) (map[uuid.UUID][]domain.Label, error) {
	out := make(map[uuid.UUID][]domain.Label, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	q := fmt.Sprintf(`
		SELECT lt.%s, t.id, t.name, t.color, t.created_at
		FROM tags t
		JOIN %s lt ON lt.tag_id = t.id
		WHERE lt.%s = ANY(@owner_ids)
		ORDER BY t.name, t.id`, l.ownerCol, l.table, l.ownerCol)

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"owner_ids": ownerIDs})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			owner, id pgtype.UUID
			lbl       domain.Label
		)
		if err := rows.Scan(&owner, &id, &lbl.Name, &lbl.Color, &lbl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		lbl.ID = uuid.UUID(id.Bytes)
		ownerID := uuid.UUID(owner.Bytes)
		out[ownerID] = append(out[ownerID], lbl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// collectLabels drains rows of (id, name, color, created_at) and closes them.
func collectLabels(rows pgx.Rows) ([]domain.Label, error) {
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return labels, nil
}

// scanLabel maps a single tags row into a domain.Label.
func scanLabel(s scanner) (domain.Label, error) {
	var (
		l  domain.Label
		id pgtype.UUID
	)
	err := s.Scan(&id, &l.Name, &l.Color, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Label{}, domain.ErrNotFound
		}
		return domain.Label{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	return l, nil
}

// Postgres error codes mapped to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError translates constraint violations into domain sentinels so the
// memory and Postgres stores report the same conditions the same way.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Detail)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.Detail)
	}
	return err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/repo"
)

// maxTagNameLen is the longest tag name accepted, in characters.
const maxTagNameLen = 64

var colorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// errUnrecorded means a successful tagging call left no resolved object behind.
var errUnrecorded = errors.New("tagged object was not recorded")

// TagService implements business logic for Tag operations.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// Create validates and persists a new tag with a fresh random ID.
// Names are free text and need not be unique. Color is optional; when set it
// must be a "#rrggbb" hex string and is stored lowercase.
func (s *TagService) Create(ctx context.Context, name, color string) (domain.Label, error) {
	name = strings.TrimSpace(name)
	color = strings.ToLower(strings.TrimSpace(color))

	if name == "" {
		return domain.Label{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxTagNameLen {
		return domain.Label{}, fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxTagNameLen)
	}
	if color != "" && !colorPattern.MatchString(color) {
		return domain.Label{}, fmt.Errorf("%w: color must look like #rrggbb", domain.ErrValidation)
	}

	l := domain.Label{
		Tag:   domain.Tag{Entity: domain.Entity{ID: uuid.New()}, Name: name},
		Color: color,
	}
	result, err := s.tags.Create(ctx, l)
	if err != nil {
		return domain.Label{}, fmt.Errorf("service.TagService.Create: %w", err)
	}
	return result, nil
}

// List returns all tags whose name starts with prefix, ignoring case.
// Always returns a non-nil slice.
func (s *TagService) List(ctx context.Context, prefix string) ([]domain.Label, error) {
	tags, err := s.tags.List(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		return []domain.Label{}, nil
	}
	return tags, nil
}

// resolveLabels loads the tags named by ids. Tag IDs come from the caller's
// request, so a nil or unknown ID is a validation failure, not a missing resource.
// Callers resolve tags before the owner: a request naming both a missing owner
// and an unknown tag fails with domain.ErrValidation.
func resolveLabels(ctx context.Context, tags repo.TagRepo, ids []uuid.UUID) ([]domain.Label, error) {
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, fmt.Errorf("%w: tag id must not be the nil UUID", domain.ErrValidation)
		}
	}
	labels, err := tags.GetMany(ctx, ids)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown tag (%v)", domain.ErrValidation, err)
		}
		return nil, err
	}
	return labels, nil
}

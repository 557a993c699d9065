package repo

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
)

// MemoryStore holds contacts, organizations and tags in process memory.
// It backs the same repo interfaces as Postgres and is used when the server
// runs with STORAGE=memory.
//
// Reads return fresh copies: mutating a returned entity never changes the
// store until it is written back through LinkTags.
type MemoryStore struct {
	mu sync.RWMutex

	contacts      map[uuid.UUID]record
	organizations map[uuid.UUID]record
	tags          map[uuid.UUID]domain.Label

	contactTags      map[uuid.UUID]map[uuid.UUID]struct{}
	organizationTags map[uuid.UUID]map[uuid.UUID]struct{}

	now func() time.Time
}

// record is the stored shape shared by contacts and organizations.
// detail is the email for contacts and the domain for organizations.
type record struct {
	id        uuid.UUID
	name      string
	detail    string
	createdAt time.Time
	updatedAt time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contacts:         make(map[uuid.UUID]record),
		organizations:    make(map[uuid.UUID]record),
		tags:             make(map[uuid.UUID]domain.Label),
		contactTags:      make(map[uuid.UUID]map[uuid.UUID]struct{}),
		organizationTags: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Contacts returns a ContactRepo backed by the store.
func (s *MemoryStore) Contacts() ContactRepo { return &memContactRepo{s: s} }

// Organizations returns an OrganizationRepo backed by the store.
func (s *MemoryStore) Organizations() OrganizationRepo { return &memOrganizationRepo{s: s} }

// Tags returns a TagRepo backed by the store.
func (s *MemoryStore) Tags() TagRepo { return &memTagRepo{s: s} }

// ---- shared helpers (callers hold s.mu) --------------------------------------

func (s *MemoryStore) insert(records map[uuid.UUID]record, id uuid.UUID, name, detail string) (record, error) {
	if _, ok := records[id]; ok {
		return record{}, fmt.Errorf("%w: id %s already exists", domain.ErrValidation, id)
	}
	now := s.now()
	rec := record{id: id, name: name, detail: detail, createdAt: now, updatedAt: now}
	records[id] = rec
	return rec, nil
}

func (s *MemoryStore) link(records map[uuid.UUID]record, links map[uuid.UUID]map[uuid.UUID]struct{}, ownerID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, ok := records[ownerID]; !ok {
		return domain.ErrNotFound
	}
	for _, id := range tagIDs {
		if _, ok := s.tags[id]; !ok {
			return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
	}
	set, ok := links[ownerID]
	if !ok {
		set = make(map[uuid.UUID]struct{}, len(tagIDs))
		links[ownerID] = set
	}
	for _, id := range tagIDs {
		set[id] = struct{}{}
	}
	return nil
}

func unlink(links map[uuid.UUID]map[uuid.UUID]struct{}, ownerID, tagID uuid.UUID) error {
	set := links[ownerID]
	if _, ok := set[tagID]; !ok {
		return domain.ErrNotFound
	}
	delete(set, tagID)
	return nil
}

func remove(records map[uuid.UUID]record, links map[uuid.UUID]map[uuid.UUID]struct{}, id uuid.UUID) error {
	if _, ok := records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(records, id)
	delete(links, id)
	return nil
}

// page returns one page of records ordered by name, then id, plus the total.
func page(records map[uuid.UUID]record, p domain.PaginationParams) ([]record, int64) {
	all := make([]record, 0, len(records))
	for _, r := range records {
		all = append(all, r)
	}
	slices.SortFunc(all, func(a, b record) int {
		if c := cmp.Compare(a.name, b.name); c != 0 {
			return c
		}
		return cmp.Compare(a.id.String(), b.id.String())
	})
	total := int64(len(all))
	start := min(max(p.Offset(), 0), len(all))
	end := min(start+p.Limit, len(all))
	return all[start:end], total
}

func (s *MemoryStore) linkedLabels(links map[uuid.UUID]map[uuid.UUID]struct{}, ownerID uuid.UUID) []domain.Label {
	out := make([]domain.Label, 0, len(links[ownerID]))
	for id := range links[ownerID] {
		if l, ok := s.tags[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *MemoryStore) contact(r record) *domain.Contact {
	c := domain.NewContact(r.id, r.name, r.detail)
	c.CreatedAt, c.UpdatedAt = r.createdAt, r.updatedAt
	for _, l := range s.linkedLabels(s.contactTags, r.id) {
		c.Tags().Add(l.Tag)
	}
	return c
}

func (s *MemoryStore) organization(r record) *domain.Organization {
	o := domain.NewOrganization(r.id, r.name, r.detail)
	o.CreatedAt, o.UpdatedAt = r.createdAt, r.updatedAt
	for _, l := range s.linkedLabels(s.organizationTags, r.id) {
		o.Tags().Add(l)
	}
	return o
}

// ---- contacts ------------------------------------------------------------------

type memContactRepo struct{ s *MemoryStore }

func (r *memContactRepo) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, err := r.s.insert(r.s.contacts, c.ID, c.Name, c.Email)
	if err != nil {
		return nil, fmt.Errorf("repo.ContactRepo.Create: %w", err)
	}
	return r.s.contact(rec), nil
}

func (r *memContactRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("repo.ContactRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.s.contact(rec), nil
}

func (r *memContactRepo) ListPaged(_ context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs, total := page(r.s.contacts, p)
	out := make([]*domain.Contact, len(recs))
	for i, rec := range recs {
		out[i] = r.s.contact(rec)
	}
	return out, total, nil
}

func (r *memContactRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := remove(r.s.contacts, r.s.contactTags, id); err != nil {
		return fmt.Errorf("repo.ContactRepo.Delete: %w", err)
	}
	return nil
}

func (r *memContactRepo) LinkTags(_ context.Context, contactID uuid.UUID, tagIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.link(r.s.contacts, r.s.contactTags, contactID, tagIDs); err != nil {
		return fmt.Errorf("repo.ContactRepo.LinkTags: %w", err)
	}
	return nil
}

func (r *memContactRepo) UnlinkTag(_ context.Context, contactID, tagID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := unlink(r.s.contactTags, contactID, tagID); err != nil {
		return fmt.Errorf("repo.ContactRepo.UnlinkTag: %w", err)
	}
	return nil
}

// ---- organizations ---------------------------------------------------------------

type memOrganizationRepo struct{ s *MemoryStore }

func (r *memOrganizationRepo) Create(_ context.Context, o *domain.Organization) (*domain.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, err := r.s.insert(r.s.organizations, o.ID, o.Name, o.Domain)
	if err != nil {
		return nil, fmt.Errorf("repo.OrganizationRepo.Create: %w", err)
	}
	return r.s.organization(rec), nil
}

func (r *memOrganizationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.organizations[id]
	if !ok {
		return nil, fmt.Errorf("repo.OrganizationRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.s.organization(rec), nil
}

func (r *memOrganizationRepo) ListPaged(_ context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs, total := page(r.s.organizations, p)
	out := make([]*domain.Organization, len(recs))
	for i, rec := range recs {
		out[i] = r.s.organization(rec)
	}
	return out, total, nil
}

func (r *memOrganizationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := remove(r.s.organizations, r.s.organizationTags, id); err != nil {
		return fmt.Errorf("repo.OrganizationRepo.Delete: %w", err)
	}
	return nil
}

func (r *memOrganizationRepo) LinkTags(_ context.Context, orgID uuid.UUID, tagIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.link(r.s.organizations, r.s.organizationTags, orgID, tagIDs); err != nil {
		return fmt.Errorf("repo.OrganizationRepo.LinkTags: %w", err)
	}
	return nil
}

func (r *memOrganizationRepo) UnlinkTag(_ context.Context, orgID, tagID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := unlink(r.s.organizationTags, orgID, tagID); err != nil {
		return fmt.Errorf("repo.OrganizationRepo.UnlinkTag: %w", err)
	}
	return nil
}

// ---- tags ------------------------------------------------------------------------

type memTagRepo struct{ s *MemoryStore }

func (r *memTagRepo) Create(_ context.Context, l domain.Label) (domain.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tags[l.ID]; ok {
		return domain.Label{}, fmt.Errorf("repo.TagRepo.Create: %w: id %s already exists", domain.ErrValidation, l.ID)
	}
	l.CreatedAt = r.s.now()
	r.s.tags[l.ID] = l
	return l, nil
}

func (r *memTagRepo) GetMany(_ context.Context, ids []uuid.UUID) ([]domain.Label, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Label, 0, len(ids))
	for _, id := range ids {
		l, ok := r.s.tags[id]
		if !ok {
			return nil, fmt.Errorf("repo.TagRepo.GetMany: tag %s: %w", id, domain.ErrNotFound)
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *memTagRepo) List(_ context.Context, prefix string) ([]domain.Label, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	prefix = strings.ToLower(prefix)
	out := []domain.Label{}
	for _, l := range r.s.tags {
		if strings.HasPrefix(strings.ToLower(l.Name), prefix) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b domain.Label) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

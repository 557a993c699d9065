// Package seed loads fixture files and applies them through the services.
//
// A fixture is a YAML document listing tags, contacts and organizations.
// Entities reference tags by name, so tag names must be unique within a file:
//
//	tags:
//	  - name: vip
//	    color: "#aa0000"
//	contacts:
//	  - name: Ada Lovelace
//	    email: ada@example.com
//	    tags: [vip]
//	organizations:
//	  - name: Acme
//	    domain: acme.test
//	    tags: [vip]
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/contactbook/internal/domain"
)

// Fixture is the decoded form of a fixture file.
type Fixture struct {
	Tags          []TagFixture          `yaml:"tags"`
	Contacts      []ContactFixture      `yaml:"contacts"`
	Organizations []OrganizationFixture `yaml:"organizations"`
}

// TagFixture describes one tag to create.
type TagFixture struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// ContactFixture describes one contact and the names of its tags.
type ContactFixture struct {
	Name  string   `yaml:"name"`
	Email string   `yaml:"email"`
	Tags  []string `yaml:"tags"`
}

// OrganizationFixture describes one organization and the names of its tags.
type OrganizationFixture struct {
	Name   string   `yaml:"name"`
	Domain string   `yaml:"domain"`
	Tags   []string `yaml:"tags"`
}

// TagService creates tags.
type TagService interface {
	Create(ctx context.Context, name, color string) (domain.Label, error)
}

// ContactService creates contacts and attaches tags to them.
type ContactService interface {
	Create(ctx context.Context, name, email string) (*domain.Contact, error)
	AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Contact, error)
}

// OrganizationService creates organizations and attaches labels to them.
type OrganizationService interface {
	Create(ctx context.Context, name, domainName string) (*domain.Organization, error)
	AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Organization, error)
}

// Services bundles the services Apply writes through.
type Services struct {
	Tags          TagService
	Contacts      ContactService
	Organizations OrganizationService
}

// Result counts what Apply created.
type Result struct {
	Tags          int
	Contacts      int
	Organizations int
}

// Load decodes a fixture from r and checks its tag references.
// Unknown YAML keys are rejected so typos do not silently drop data.
func Load(r io.Reader) (Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("seed.Load: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, fmt.Errorf("seed.Load: %w", err)
	}
	return f, nil
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) (Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("seed.LoadFile: %w", err)
	}
	defer file.Close()
	return Load(file)
}

// Validate checks that tag names are unique and that every reference names a
// tag declared in the same fixture. Returns an error wrapping domain.ErrValidation.
func (f Fixture) Validate() error {
	declared := make(map[string]bool, len(f.Tags))
	for _, t := range f.Tags {
		key := tagKey(t.Name)
		if key == "" {
			return fmt.Errorf("%w: tag with empty name", domain.ErrValidation)
		}
		if declared[key] {
			return fmt.Errorf("%w: tag %q declared twice", domain.ErrValidation, t.Name)
		}
		declared[key] = true
	}

	check := func(kind, owner string, refs []string) error {
		for _, ref := range refs {
			if !declared[tagKey(ref)] {
				return fmt.Errorf("%w: %s %q references unknown tag %q", domain.ErrValidation, kind, owner, ref)
			}
		}
		return nil
	}
	for _, c := range f.Contacts {
		if err := check("contact", c.Name, c.Tags); err != nil {
			return err
		}
	}
	for _, o := range f.Organizations {
		if err := check("organization", o.Name, o.Tags); err != nil {
			return err
		}
	}
	return nil
}

// Apply creates the fixture's tags, then each contact and organization with
// its tags attached. It stops at the first error; entities created before the
// failure are kept.
func Apply(ctx context.Context, f Fixture, svc Services) (Result, error) {
	var res Result
	if err := f.Validate(); err != nil {
		return res, fmt.Errorf("seed.Apply: %w", err)
	}

	ids := make(map[string]uuid.UUID, len(f.Tags))
	for _, t := range f.Tags {
		l, err := svc.Tags.Create(ctx, t.Name, t.Color)
		if err != nil {
			return res, fmt.Errorf("seed.Apply: tag %q: %w", t.Name, err)
		}
		ids[tagKey(t.Name)] = l.ID
		res.Tags++
	}

	for _, c := range f.Contacts {
		created, err := svc.Contacts.Create(ctx, c.Name, c.Email)
		if err != nil {
			return res, fmt.Errorf("seed.Apply: contact %q: %w", c.Name, err)
		}
		if _, err := svc.Contacts.AddTags(ctx, created.ID, resolve(ids, c.Tags)); err != nil {
			return res, fmt.Errorf("seed.Apply: contact %q: %w", c.Name, err)
		}
		res.Contacts++
	}

	for _, o := range f.Organizations {
		created, err := svc.Organizations.Create(ctx, o.Name, o.Domain)
		if err != nil {
			return res, fmt.Errorf("seed.Apply: organization %q: %w", o.Name, err)
		}
		if _, err := svc.Organizations.AddTags(ctx, created.ID, resolve(ids, o.Tags)); err != nil {
			return res, fmt.Errorf("seed.Apply: organization %q: %w", o.Name, err)
		}
		res.Organizations++
	}
	return res, nil
}

func resolve(ids map[string]uuid.UUID, names []string) []uuid.UUID {
	out := make([]uuid.UUID, len(names))
	for i, n := range names {
		out[i] = ids[tagKey(n)]
	}
	return out
}

// tagKey is the lookup key for a tag name: references match case-insensitively.
func tagKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

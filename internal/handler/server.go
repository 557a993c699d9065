// Package handler implements the HTTP handlers for the contact book API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, contact.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/contactbook/internal/domain"
)

// ContactServicer defines the business operations the contact handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ContactServicer interface {
	Create(ctx context.Context, name, email string) (*domain.Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Contact, error)
	RemoveTag(ctx context.Context, id, tagID uuid.UUID) error
}

// OrganizationServicer defines the business operations the organization handlers depend on.
type OrganizationServicer interface {
	Create(ctx context.Context, name, domainName string) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Organization, error)
	RemoveTag(ctx context.Context, id, tagID uuid.UUID) error
}

// TagServicer defines the business operations the tag handlers depend on.
type TagServicer interface {
	Create(ctx context.Context, name, color string) (domain.Label, error)
	List(ctx context.Context, prefix string) ([]domain.Label, error)
}

// ExportServicer defines the business operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server serves every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	contacts ContactServicer
	orgs     OrganizationServicer
	tags     TagServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// Services a caller does not route to may be nil. A nil logger means slog.Default.
func NewServer(contacts ContactServicer, orgs OrganizationServicer, tags TagServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{contacts: contacts, orgs: orgs, tags: tags, export: export, log: log}
}

// Handler returns a chi router with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all API routes on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", s.ListContacts)
		r.Post("/", s.CreateContact)
		r.Route("/{contactId}", func(r chi.Router) {
			r.Get("/", s.GetContact)
			r.Delete("/", s.DeleteContact)
			r.Post("/tags", s.AddContactTags)
			r.Delete("/tags/{tagId}", s.RemoveContactTag)
		})
	})

	r.Route("/organizations", func(r chi.Router) {
		r.Get("/", s.ListOrganizations)
		r.Post("/", s.CreateOrganization)
		r.Route("/{organizationId}", func(r chi.Router) {
			r.Get("/", s.GetOrganization)
			r.Delete("/", s.DeleteOrganization)
			r.Post("/tags", s.AddOrganizationTags)
			r.Delete("/tags/{tagId}", s.RemoveOrganizationTag)
		})
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", s.ListTags)
		r.Post("/", s.CreateTag)
	})

	r.Get("/export", s.GetExport)
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/handler"
)

// ---- mock ContactServicer ----------------------------------------------------

type mockContactServicer struct {
	create    func(ctx context.Context, name, email string) (*domain.Contact, error)
	getByID   func(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	addTags   func(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Contact, error)
	removeTag func(ctx context.Context, id, tagID uuid.UUID) error
}

func (m *mockContactServicer) Create(ctx context.Context, name, email string) (*domain.Contact, error) {
	return m.create(ctx, name, email)
}
func (m *mockContactServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return m.getByID(ctx, id)
}
func (m *mockContactServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Contact, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockContactServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockContactServicer) AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Contact, error) {
	return m.addTags(ctx, id, tagIDs)
}
func (m *mockContactServicer) RemoveTag(ctx context.Context, id, tagID uuid.UUID) error {
	return m.removeTag(ctx, id, tagID)
}

// ---- mock OrganizationServicer -----------------------------------------------

type mockOrgServicer struct {
	create    func(ctx context.Context, name, domainName string) (*domain.Organization, error)
	getByID   func(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	addTags   func(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Organization, error)
	removeTag func(ctx context.Context, id, tagID uuid.UUID) error
}

func (m *mockOrgServicer) Create(ctx context.Context, name, domainName string) (*domain.Organization, error) {
	return m.create(ctx, name, domainName)
}
func (m *mockOrgServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return m.getByID(ctx, id)
}
func (m *mockOrgServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]*domain.Organization, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockOrgServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockOrgServicer) AddTags(ctx context.Context, id uuid.UUID, tagIDs []uuid.UUID) (*domain.Organization, error) {
	return m.addTags(ctx, id, tagIDs)
}
func (m *mockOrgServicer) RemoveTag(ctx context.Context, id, tagID uuid.UUID) error {
	return m.removeTag(ctx, id, tagID)
}

// ---- mock TagServicer --------------------------------------------------------

type mockTagServicer struct {
	create func(ctx context.Context, name, color string) (domain.Label, error)
	list   func(ctx context.Context, prefix string) ([]domain.Label, error)
}

func (m *mockTagServicer) Create(ctx context.Context, name, color string) (domain.Label, error) {
	return m.create(ctx, name, color)
}
func (m *mockTagServicer) List(ctx context.Context, prefix string) ([]domain.Label, error) {
	return m.list(ctx, prefix)
}

// ---- mock ExportServicer -----------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks
var (
	_ handler.ContactServicer      = (*mockContactServicer)(nil)
	_ handler.OrganizationServicer = (*mockOrgServicer)(nil)
	_ handler.TagServicer          = (*mockTagServicer)(nil)
	_ handler.ExportServicer       = (*mockExportServicer)(nil)
)

// ---- helpers -------------------------------------------------------------------

// services holds the mocks a test wires into the Server. Nil fields stay nil.
type services struct {
	contacts handler.ContactServicer
	orgs     handler.OrganizationServicer
	tags     handler.TagServicer
	export   handler.ExportServicer
}

func newHTTPHandler(svc services) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return handler.NewServer(svc.contacts, svc.orgs, svc.tags, svc.export, logger).Handler()
}

// jsonBody encodes v as a JSON request body.
func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// decodeError decodes an ErrorResponse body.
func decodeError(t *testing.T, body io.Reader) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func labelFixture(name, color string) domain.Label {
	return domain.Label{
		Tag:   domain.Tag{Entity: domain.Entity{ID: uuid.New()}, Name: name},
		Color: color,
	}
}

package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/contactbook/internal/domain"
	"github.com/pkordes/contactbook/internal/handler"
)

func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		Kind:   domain.KindContact,
		ID:     uuid.NewString(),
		Name:   "Ada Lovelace",
		Detail: "ada@example.com",
		Tags:   []string{"lead", "vip"},
	}
}

func exportHandler(rows []domain.ExportRow, err error) http.Handler {
	return newHTTPHandler(services{export: &mockExportServicer{
		export: func(context.Context) ([]domain.ExportRow, error) { return rows, err },
	}})
}

// ---- GET /export JSON ----------------------------------------------------

func TestGetExport_DefaultJSON_EmptyResult(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	exportHandler([]domain.ExportRow{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.Empty(t, rows)
}

func TestGetExport_JSON_WithRows(t *testing.T) {
	row := exportRowFixture()

	req := httptest.NewRequest(http.MethodGet, "/export?format=json", nil)
	rec := httptest.NewRecorder()
	exportHandler([]domain.ExportRow{row}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "contact", rows[0].Kind)
	assert.Equal(t, []string{"lead", "vip"}, rows[0].Tags)
}

// ---- GET /export?format=csv --------------------------------------------------

func TestGetExport_CSV_HeaderAndPipeJoinedTags(t *testing.T) {
	row := exportRowFixture()

	req := httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)
	rec := httptest.NewRecorder()
	exportHandler([]domain.ExportRow{row}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"kind", "id", "name", "detail", "tags"}, records[0])
	assert.Equal(t, []string{"contact", row.ID, "Ada Lovelace", "ada@example.com", "lead|vip"}, records[1])
}

func TestGetExport_400_UnknownFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/export?format=xml", nil)
	rec := httptest.NewRecorder()
	exportHandler(nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetExport_500(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	exportHandler(nil, errors.New("boom")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package in_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	materialsin "fathom/internal/modules/materials/adapter/in"
	"fathom/internal/modules/materials/dto"
	apperrors "fathom/internal/platform/errors"
)

type fakeMaterials struct {
	pdfPath     string
	lastOpen    dto.OpenInput
	lastModules dto.ModulesInput
}

func (f *fakeMaterials) List(context.Context) (dto.CatalogOutput, error) {
	return dto.CatalogOutput{Experience: 40, Materials: []dto.MaterialOutput{{ID: "getting-started", Kind: "markdown"}}}, nil
}

func (f *fakeMaterials) Open(_ context.Context, input dto.OpenInput) (dto.OpenOutput, error) {
	f.lastOpen = input
	if input.ID == "locked" {
		return dto.OpenOutput{}, apperrors.ErrMaterialLocked
	}
	return dto.OpenOutput{Material: dto.MaterialOutput{ID: input.ID}, Page: input.Page, TotalPages: 4, Content: "text"}, nil
}

func (f *fakeMaterials) Unlock(context.Context, dto.UnlockInput) (dto.UnlockOutput, error) {
	return dto.UnlockOutput{}, nil
}

func (f *fakeMaterials) PDFs(context.Context) ([]dto.PDFOutput, error) { return nil, nil }

func (f *fakeMaterials) PDFPath(_ context.Context, filename string) (string, error) {
	if filename != "guide.pdf" {
		return "", apperrors.ErrNotFound
	}
	return f.pdfPath, nil
}

func (f *fakeMaterials) Modules(_ context.Context, input dto.ModulesInput) (dto.ModulesOutput, error) {
	f.lastModules = input
	return dto.ModulesOutput{
		Categories: []string{"Parenting"},
		Modules:    []dto.ModuleInfoOutput{{Slug: "connecting-with-teens", Title: "Connecting with Teens", Category: "Parenting", Enabled: true}},
	}, nil
}

func (f *fakeMaterials) Module(_ context.Context, slug string) (dto.ModuleOutput, error) {
	switch slug {
	case "mindful-discipline":
		return dto.ModuleOutput{}, apperrors.ErrModuleDisabled
	case "nope":
		return dto.ModuleOutput{}, apperrors.ErrNotFound
	}
	return dto.ModuleOutput{Slug: slug, Content: "# " + slug}, nil
}

func newServer(t *testing.T) (*fakeMaterials, http.Handler) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guide.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	fake := &fakeMaterials{pdfPath: path}
	r := chi.NewRouter()
	materialsin.NewHTTPHandler(fake).Routes(r)
	return fake, r
}

func TestMaterialsRoutes(t *testing.T) {
	t.Parallel()
	fake, srv := newServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/materials", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog dto.CatalogOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Equal(t, 40, catalog.Experience)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/materials/gratitude-workbook?page=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.OpenInput{ID: "gratitude-workbook", Page: 2}, fake.lastOpen)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/materials/locked", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/materials/modules/mindfulness", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slug":"mindfulness","content":"# mindfulness"}`, rec.Body.String())
}

func TestModuleRoutes(t *testing.T) {
	t.Parallel()
	fake, srv := newServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/modules?category=Parenting&enabled=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.ModulesInput{Category: "Parenting", EnabledOnly: true}, fake.lastModules)
	assert.JSONEq(t, `{"categories":["Parenting"],"modules":[{"slug":"connecting-with-teens","title":"Connecting with Teens","description":"","category":"Parenting","enabled":true}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/modules/work-life-rhythm", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slug":"work-life-rhythm","content":"# work-life-rhythm"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/modules/mindful-discipline", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/modules/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPDFRoutes(t *testing.T) {
	t.Parallel()
	_, srv := newServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pdfs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pdfs":[]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pdfs/guide.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pdfs/other.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

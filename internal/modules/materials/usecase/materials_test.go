package usecase_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	materialsout "fathom/internal/modules/materials/adapter/out"
	"fathom/internal/modules/materials/domain"
	"fathom/internal/modules/materials/dto"
	materialsin "fathom/internal/modules/materials/port/in"
	"fathom/internal/modules/materials/service"
	"fathom/internal/modules/materials/usecase"
	apperrors "fathom/internal/platform/errors"
)

type fakeProgress struct {
	items  []domain.Item
	wallet domain.Wallet
}

func (f *fakeProgress) Materials(context.Context) ([]domain.Item, error) {
	return append([]domain.Item(nil), f.items...), nil
}

func (f *fakeProgress) Wallet(context.Context) (domain.Wallet, error) { return f.wallet, nil }

func (f *fakeProgress) Purchase(_ context.Context, id string) ([]string, error) {
	for _, item := range f.items {
		if item.ID != id {
			continue
		}
		if f.wallet.Owns(id) {
			return nil, apperrors.ErrAlreadyOwned
		}
		if f.wallet.Experience < item.Cost {
			return nil, fmt.Errorf("%w: need %d", apperrors.ErrInsufficientXP, item.Cost)
		}
		f.wallet.Experience -= item.Cost
		f.wallet.Owned = append(f.wallet.Owned, id)
		return []string{"Unlocked " + item.Name}, nil
	}
	return nil, apperrors.ErrUnknownMaterial
}

type fakePDFReader struct{ path string }

func (f *fakePDFReader) ReadPage(_ context.Context, path string, page int) (domain.Page, int, error) {
	f.path = path
	return domain.Page{Number: page, Text: fmt.Sprintf("page %d text", page)}, 12, nil
}

type fakeLauncher struct{ opened string }

func (l *fakeLauncher) Open(_ context.Context, target string) error {
	l.opened = target
	return nil
}

const materialsMarkdown = "# Getting Started\nWelcome to reflection.\n# Mindfulness\nBreathe.\n" +
	"# Christian Financial Stewardship: A Developmental Model v2\nRhythm and money.\n" +
	"# Levels of Fathering Identity Development in Christians\nStages of identity.\n" +
	"# Teen Talks\nAsk, then listen.\n"

type harness struct {
	uc       materialsin.Usecase
	progress *fakeProgress
	pdf      *fakePDFReader
	launcher *fakeLauncher
	pdfDir   string
	root     string
}

func newHarness(t *testing.T, writeSource bool) harness {
	t.Helper()
	root := t.TempDir()
	pdfDir := filepath.Join(root, "pdfs")
	require.NoError(t, os.MkdirAll(pdfDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pdfDir, "gratitude-workbook.pdf"), []byte("%PDF-1.4"), 0o644))
	source := filepath.Join(root, "Materials.md")
	if writeSource {
		require.NoError(t, os.WriteFile(source, []byte(materialsMarkdown), 0o644))
	}
	progress := &fakeProgress{
		items: []domain.Item{
			{ID: "getting-started", Name: "Getting Started", Module: "getting-started"},
			{ID: "mindfulness-basics", Name: "Mindfulness Basics", Cost: 100, Module: "mindfulness"},
			{ID: "gratitude-workbook", Name: "Gratitude Workbook", Cost: 200, PDF: "gratitude-workbook.pdf"},
		},
		wallet: domain.Wallet{Experience: 150},
	}
	pdf := &fakePDFReader{}
	launcher := &fakeLauncher{}
	svc := service.NewMaterialsService(
		progress,
		materialsout.NewDirPDFLibrary(pdfDir),
		pdf,
		materialsout.NewLocalMarkdownReader(),
		launcher,
		source,
	).WithModules(materialsout.NewYAMLModuleCatalog(filepath.Join(root, "modules.yaml")))
	return harness{uc: usecase.NewInteractor(svc, nil), progress: progress, pdf: pdf, launcher: launcher, pdfDir: pdfDir, root: root}
}

func TestListJoinsOwnershipAndAffordability(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	out, err := h.uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, out.Experience)
	require.Len(t, out.Materials, 3)

	byID := map[string]dto.MaterialOutput{}
	for _, m := range out.Materials {
		byID[m.ID] = m
	}
	assert.False(t, byID["getting-started"].Locked)
	assert.True(t, byID["getting-started"].Affordable)
	assert.True(t, byID["mindfulness-basics"].Locked)
	assert.True(t, byID["mindfulness-basics"].Affordable)
	assert.True(t, byID["gratitude-workbook"].Locked)
	assert.False(t, byID["gratitude-workbook"].Affordable)
	assert.Equal(t, "pdf", byID["gratitude-workbook"].Kind)
}

func TestOpenFreeMarkdownMaterial(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	out, err := h.uc.Open(context.Background(), dto.OpenInput{ID: "getting-started"})
	require.NoError(t, err)
	assert.Equal(t, "# Getting Started\n\nWelcome to reflection.", out.Content)
	assert.Zero(t, out.TotalPages)
}

func TestOpenWithoutSourceFile(t *testing.T) {
	t.Parallel()
	h := newHarness(t, false)
	out, err := h.uc.Open(context.Background(), dto.OpenInput{ID: "getting-started"})
	require.NoError(t, err)
	assert.Equal(t, domain.MissingSource, out.Content)
}

func TestOpenLockedAndUnknown(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	_, err := h.uc.Open(context.Background(), dto.OpenInput{ID: "mindfulness-basics"})
	require.ErrorIs(t, err, apperrors.ErrMaterialLocked)

	_, err = h.uc.Module(context.Background(), "mindfulness")
	require.ErrorIs(t, err, apperrors.ErrMaterialLocked)

	_, err = h.uc.Open(context.Background(), dto.OpenInput{ID: "nope"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = h.uc.Open(context.Background(), dto.OpenInput{ID: " "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUnlockThenRead(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	ctx := context.Background()

	_, err := h.uc.Unlock(ctx, dto.UnlockInput{ID: "gratitude-workbook"})
	require.ErrorIs(t, err, apperrors.ErrInsufficientXP)

	unlocked, err := h.uc.Unlock(ctx, dto.UnlockInput{ID: "mindfulness-basics"})
	require.NoError(t, err)
	assert.True(t, unlocked.Material.Owned)
	assert.False(t, unlocked.Material.Locked)
	assert.Equal(t, []string{"Unlocked Mindfulness Basics"}, unlocked.Outcomes)
	assert.Equal(t, 50, h.progress.wallet.Experience)

	module, err := h.uc.Module(ctx, "mindfulness")
	require.NoError(t, err)
	assert.Equal(t, "# Mindfulness\n\nBreathe.", module.Content)

	h.progress.wallet.Experience = 300
	_, err = h.uc.Unlock(ctx, dto.UnlockInput{ID: "gratitude-workbook"})
	require.NoError(t, err)

	page, err := h.uc.Open(ctx, dto.OpenInput{ID: "gratitude-workbook", Page: 3, LaunchExternal: true})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 12, page.TotalPages)
	assert.Equal(t, "page 3 text", page.Content)
	want := filepath.Join(h.pdfDir, "gratitude-workbook.pdf")
	assert.Equal(t, want, h.pdf.path)
	assert.Equal(t, want, h.launcher.opened)
	assert.True(t, page.ExternalLaunched)

	first, err := h.uc.Open(ctx, dto.OpenInput{ID: "gratitude-workbook"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.False(t, first.ExternalLaunched)
}

func TestPDFsNewestFirst(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	older := filepath.Join(h.pdfDir, "breathing_guide.pdf")
	require.NoError(t, os.WriteFile(older, []byte("%PDF-1.4 longer"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(h.pdfDir, "notes.txt"), []byte("skip"), 0o644))
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(older, base, base))
	newer := filepath.Join(h.pdfDir, "gratitude-workbook.pdf")
	require.NoError(t, os.Chtimes(newer, base.Add(time.Hour), base.Add(time.Hour)))

	files, err := h.uc.PDFs(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "gratitude-workbook.pdf", files[0].Filename)
	assert.Equal(t, "Gratitude Workbook", files[0].DisplayName)
	assert.Equal(t, "Breathing Guide", files[1].DisplayName)
	assert.Equal(t, int64(len("%PDF-1.4 longer")), files[1].Size)
}

func TestPDFPathGuards(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	ctx := context.Background()
	for _, name := range []string{"../secret.pdf", "a/b.pdf", "notes.txt", ""} {
		_, err := h.uc.PDFPath(ctx, name)
		require.ErrorIs(t, err, apperrors.ErrInvalidInput, name)
	}
	_, err := h.uc.PDFPath(ctx, "gratitude-workbook.pdf")
	require.ErrorIs(t, err, apperrors.ErrMaterialLocked)

	_, err = h.uc.PDFPath(ctx, "missing.pdf")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	h.progress.wallet.Owned = []string{"gratitude-workbook"}
	path, err := h.uc.PDFPath(ctx, "gratitude-workbook.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.pdfDir, "gratitude-workbook.pdf"), path)
}

func TestModulesGrid(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	ctx := context.Background()

	all, err := h.uc.Modules(ctx, dto.ModulesInput{})
	require.NoError(t, err)
	require.Len(t, all.Modules, 9)
	assert.Equal(t, "foundations-of-fatherhood", all.Modules[0].Slug)
	assert.Equal(t, []string{"Fatherhood", "Career", "Relationships", "Parenting", "Balance", "Wellness", "Finance"}, all.Categories)

	parenting, err := h.uc.Modules(ctx, dto.ModulesInput{Category: "parenting"})
	require.NoError(t, err)
	var slugs []string
	for _, m := range parenting.Modules {
		slugs = append(slugs, m.Slug)
	}
	assert.Equal(t, []string{"raising-toddlers-with-calm", "connecting-with-teens", "mindful-discipline"}, slugs)

	enabled, err := h.uc.Modules(ctx, dto.ModulesInput{EnabledOnly: true})
	require.NoError(t, err)
	assert.Len(t, enabled.Modules, 7)
	for _, m := range enabled.Modules {
		assert.True(t, m.Enabled, m.Slug)
	}

	none, err := h.uc.Modules(ctx, dto.ModulesInput{Category: "Finance", EnabledOnly: true})
	require.NoError(t, err)
	assert.Empty(t, none.Modules)
}

func TestModulesFromFileReplaceDefaults(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	body := "modules:\n  - slug: teen-years\n    title: Teen Years\n    category: Parenting\n    enabled: true\n    headings: [Teen Talks]\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.root, "modules.yaml"), []byte(body), 0o644))

	out, err := h.uc.Modules(context.Background(), dto.ModulesInput{})
	require.NoError(t, err)
	require.Len(t, out.Modules, 1)
	assert.Equal(t, "Teen Years", out.Modules[0].Title)

	page, err := h.uc.Module(context.Background(), "teen-years")
	require.NoError(t, err)
	assert.Equal(t, "# Teen Talks\n\nAsk, then listen.", page.Content)
}

func TestModulePage(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	ctx := context.Background()

	page, err := h.uc.Module(ctx, "work-life-rhythm")
	require.NoError(t, err)
	require.NotNil(t, page.Module)
	assert.Equal(t, "Work-Life Rhythm", page.Module.Title)
	assert.Equal(t, "# Christian Financial Stewardship: A Developmental Model v2\n\nRhythm and money.", page.Content)

	page, err = h.uc.Module(ctx, "navigating-career-changes")
	require.NoError(t, err)
	assert.Equal(t, domain.NoContent("navigating-career-changes"), page.Content)

	_, err = h.uc.Module(ctx, "mindful-discipline")
	require.ErrorIs(t, err, apperrors.ErrModuleDisabled)

	_, err = h.uc.Module(ctx, "unknown-module")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = h.uc.Module(ctx, "  ")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestModulePageAddsOpenMaterials(t *testing.T) {
	t.Parallel()
	h := newHarness(t, true)
	ctx := context.Background()
	h.progress.items = append(h.progress.items, domain.Item{
		ID: "teen-talks", Name: "Teen Talks", Cost: 100, Module: "connecting-with-teens", Headings: []string{"Teen Talks"},
	})

	page, err := h.uc.Module(ctx, "connecting-with-teens")
	require.NoError(t, err)
	require.Len(t, page.Materials, 1)
	assert.True(t, page.Materials[0].Locked)
	assert.Equal(t, "# Levels of Fathering Identity Development in Christians\n\nStages of identity.", page.Content)

	_, err = h.uc.Unlock(ctx, dto.UnlockInput{ID: "teen-talks"})
	require.NoError(t, err)
	page, err = h.uc.Module(ctx, "connecting-with-teens")
	require.NoError(t, err)
	assert.False(t, page.Materials[0].Locked)
	assert.Equal(t, "# Levels of Fathering Identity Development in Christians\n\nStages of identity.\n\n---\n\n# Teen Talks\n\nAsk, then listen.", page.Content)

	opened, err := h.uc.Open(ctx, dto.OpenInput{ID: "teen-talks"})
	require.NoError(t, err)
	assert.Equal(t, "# Teen Talks\n\nAsk, then listen.", opened.Content)
}

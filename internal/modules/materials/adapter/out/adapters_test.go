package out_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	materialsout "fathom/internal/modules/materials/adapter/out"
	"fathom/internal/modules/materials/domain"
	apperrors "fathom/internal/platform/errors"
)

func TestDirPDFLibraryMissingDir(t *testing.T) {
	t.Parallel()
	lib := materialsout.NewDirPDFLibrary(filepath.Join(t.TempDir(), "absent"))
	files, err := lib.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = lib.Resolve(context.Background(), "x.pdf")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDirPDFLibrarySkipsDirsAndOtherFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("#"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Self_Care-Plan.PDF"), []byte("%PDF"), 0o644))

	lib := materialsout.NewDirPDFLibrary(dir)
	files, err := lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Self Care Plan", files[0].DisplayName)
	assert.Equal(t, int64(4), files[0].Size)

	_, err = lib.Resolve(context.Background(), "nested.pdf")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarkdownReader(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Materials.md")
	reader := materialsout.NewLocalMarkdownReader()

	_, err := reader.Read(context.Background(), path)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("# Title\nbody"), 0o644))
	content, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\nbody", content)
}

func TestPDFReaderRejectsNonPDF(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))
	_, _, err := materialsout.NewLocalPDFReader().ReadPage(context.Background(), path, 1)
	require.Error(t, err)
}

func TestYAMLModuleCatalogSeedRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data", "modules.yaml")
	written, err := materialsout.WriteDefaultModules(path)
	require.NoError(t, err)
	assert.True(t, written)
	written, err = materialsout.WriteDefaultModules(path)
	require.NoError(t, err)
	assert.False(t, written)

	modules, err := materialsout.NewYAMLModuleCatalog(path).Modules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModules(), modules)
}

func TestYAMLModuleCatalogRejectsDuplicates(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "modules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules:\n  - slug: a\n  - slug: a\n"), 0o644))
	_, err := materialsout.NewYAMLModuleCatalog(path).Modules(context.Background())
	require.ErrorContains(t, err, `module "a" listed twice`)
}

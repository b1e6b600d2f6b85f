package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fathom/internal/modules/materials/domain"
	materialsout "fathom/internal/modules/materials/port/out"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/storeio"
)

// DirPDFLibrary lists the PDFs sitting directly in one directory.
type DirPDFLibrary struct {
	dir string
}

func NewDirPDFLibrary(dir string) materialsout.PDFLibrary {
	return &DirPDFLibrary{dir: dir}
}

func (l *DirPDFLibrary) List(ctx context.Context) ([]domain.PDFFile, error) {
	var files []domain.PDFFile
	err := storeio.Run(ctx, func() error {
		entries, err := os.ReadDir(l.dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("read pdf dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", entry.Name(), err)
			}
			files = append(files, domain.PDFFile{
				Filename:    entry.Name(),
				DisplayName: domain.DisplayName(entry.Name()),
				Path:        filepath.Join(l.dir, entry.Name()),
				Size:        info.Size(),
				Modified:    info.ModTime(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, storeio.Unavailable(err)
	}
	return files, nil
}

func (l *DirPDFLibrary) Resolve(ctx context.Context, filename string) (string, error) {
	path := filepath.Join(l.dir, filepath.Base(filename))
	err := storeio.Run(ctx, func() error {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: pdf %q", apperrors.ErrNotFound, filename)
			}
			return fmt.Errorf("stat pdf: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: pdf %q", apperrors.ErrNotFound, filename)
		}
		return nil
	})
	if err != nil {
		return "", storeio.Unavailable(err)
	}
	return path, nil
}

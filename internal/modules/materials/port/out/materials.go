package out

import (
	"context"

	"fathom/internal/modules/materials/domain"
)

// ProgressPort exposes the progression catalog and wallet to the materials module.
type ProgressPort interface {
	Materials(ctx context.Context) ([]domain.Item, error)
	Wallet(ctx context.Context) (domain.Wallet, error)
	Purchase(ctx context.Context, materialID string) ([]string, error)
}

// ModuleCatalog lists the modules of the home grid in display order.
type ModuleCatalog interface {
	Modules(ctx context.Context) ([]domain.Module, error)
}

type PDFLibrary interface {
	List(ctx context.Context) ([]domain.PDFFile, error)
	Resolve(ctx context.Context, filename string) (string, error)
}

type PDFReader interface {
	ReadPage(ctx context.Context, path string, page int) (domain.Page, int, error)
}

type MarkdownReader interface {
	Read(ctx context.Context, path string) (string, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"fathom/internal/modules/materials/domain"
	materialsout "fathom/internal/modules/materials/port/out"
	apperrors "fathom/internal/platform/errors"
)

type MaterialsService struct {
	progress   materialsout.ProgressPort
	pdfs       materialsout.PDFLibrary
	pdfReader  materialsout.PDFReader
	mdReader   materialsout.MarkdownReader
	launcher   materialsout.ExternalLauncher
	modules    materialsout.ModuleCatalog
	sourceFile string
}

func NewMaterialsService(
	progress materialsout.ProgressPort,
	pdfs materialsout.PDFLibrary,
	pdfReader materialsout.PDFReader,
	mdReader materialsout.MarkdownReader,
	launcher materialsout.ExternalLauncher,
	sourceFile string,
) *MaterialsService {
	return &MaterialsService{
		progress:   progress,
		pdfs:       pdfs,
		pdfReader:  pdfReader,
		mdReader:   mdReader,
		launcher:   launcher,
		sourceFile: sourceFile,
	}
}

// WithModules sets the module grid. Without it no module is listed.
func (s *MaterialsService) WithModules(modules materialsout.ModuleCatalog) *MaterialsService {
	s.modules = modules
	return s
}

// Catalog joins the progression catalog with the wallet.
func (s *MaterialsService) Catalog(ctx context.Context) ([]domain.Item, domain.Wallet, error) {
	items, err := s.progress.Materials(ctx)
	if err != nil {
		return nil, domain.Wallet{}, err
	}
	wallet, err := s.progress.Wallet(ctx)
	if err != nil {
		return nil, domain.Wallet{}, err
	}
	for i := range items {
		items[i].Owned = wallet.Owns(items[i].ID)
		items[i].Affordable = items[i].Owned || wallet.Experience >= items[i].Cost
	}
	return items, wallet, nil
}

func (s *MaterialsService) Find(ctx context.Context, id string) (domain.Item, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Item{}, fmt.Errorf("%w: material id is required", apperrors.ErrInvalidInput)
	}
	items, _, err := s.Catalog(ctx)
	if err != nil {
		return domain.Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, fmt.Errorf("%w: material %q", apperrors.ErrNotFound, id)
}

// Open returns a page of a PDF material or the markdown of a module material.
func (s *MaterialsService) Open(ctx context.Context, id string, page int, launchExternal bool) (domain.Opened, error) {
	item, err := s.Find(ctx, id)
	if err != nil {
		return domain.Opened{}, err
	}
	if item.Locked() {
		return domain.Opened{}, fmt.Errorf("%w: %s costs %d XP", apperrors.ErrMaterialLocked, item.ID, item.Cost)
	}
	if item.Kind() == domain.KindMarkdown {
		module := item.Module
		if module == "" {
			module = item.ID
		}
		headings := item.Headings
		if len(headings) == 0 {
			modules, err := s.moduleList(ctx)
			if err != nil {
				return domain.Opened{}, err
			}
			if m, ok := domain.FindModule(modules, module); ok {
				headings = m.Headings
			}
		}
		text, err := s.moduleContent(ctx, module, headings)
		if err != nil {
			return domain.Opened{}, err
		}
		return domain.Opened{Item: item, Text: text}, nil
	}

	path, err := s.pdfs.Resolve(ctx, item.PDF)
	if err != nil {
		return domain.Opened{}, err
	}
	opened := domain.Opened{Item: item, Target: path}
	if launchExternal && s.launcher != nil {
		if err := s.launcher.Open(ctx, path); err != nil {
			return domain.Opened{}, err
		}
		opened.Launched = true
	}
	if page <= 0 {
		page = 1
	}
	p, total, err := s.pdfReader.ReadPage(ctx, path, page)
	if err != nil {
		return domain.Opened{}, err
	}
	opened.Page = p.Number
	opened.TotalPages = total
	opened.Text = p.Text
	return opened, nil
}

// Unlock buys the material with experience and returns the refreshed item.
func (s *MaterialsService) Unlock(ctx context.Context, id string) (domain.Item, []string, error) {
	if _, err := s.Find(ctx, id); err != nil {
		return domain.Item{}, nil, err
	}
	outcomes, err := s.progress.Purchase(ctx, id)
	if err != nil {
		return domain.Item{}, nil, err
	}
	item, err := s.Find(ctx, id)
	if err != nil {
		return domain.Item{}, nil, err
	}
	return item, outcomes, nil
}

// ListPDFs returns the PDF directory newest first.
func (s *MaterialsService) ListPDFs(ctx context.Context) ([]domain.PDFFile, error) {
	files, err := s.pdfs.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Modified.Equal(files[j].Modified) {
			return files[i].Filename < files[j].Filename
		}
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// PDFPath resolves a PDF filename for download. Files sold as locked materials stay hidden.
func (s *MaterialsService) PDFPath(ctx context.Context, filename string) (string, error) {
	if filename == "" || filename != strings.TrimSpace(filename) || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return "", fmt.Errorf("%w: invalid pdf filename %q", apperrors.ErrInvalidInput, filename)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", fmt.Errorf("%w: %q is not a pdf", apperrors.ErrInvalidInput, filename)
	}
	items, _, err := s.Catalog(ctx)
	if err != nil {
		return "", err
	}
	for _, item := range items {
		if item.PDF == filename && item.Locked() {
			return "", fmt.Errorf("%w: %s costs %d XP", apperrors.ErrMaterialLocked, item.ID, item.Cost)
		}
	}
	return s.pdfs.Resolve(ctx, filename)
}

// Modules returns the module grid filtered by category and enabled state, together with
// every category of the grid.
func (s *MaterialsService) Modules(ctx context.Context, category string, enabledOnly bool) ([]domain.Module, []string, error) {
	modules, err := s.moduleList(ctx)
	if err != nil {
		return nil, nil, err
	}
	return domain.FilterModules(modules, strings.TrimSpace(category), enabledOnly), domain.Categories(modules), nil
}

// Module builds the page of a module slug. Listed modules read their own headings plus those of
// open materials mapped to them; a disabled one is refused. A slug known only from materials is
// refused while one of its materials is locked.
func (s *MaterialsService) Module(ctx context.Context, slug string) (domain.ModuleView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.ModuleView{}, fmt.Errorf("%w: module slug is required", apperrors.ErrInvalidInput)
	}
	modules, err := s.moduleList(ctx)
	if err != nil {
		return domain.ModuleView{}, err
	}
	items, _, err := s.Catalog(ctx)
	if err != nil {
		return domain.ModuleView{}, err
	}
	view := domain.ModuleView{Slug: slug}
	view.Module, view.Listed = domain.FindModule(modules, slug)
	for _, item := range items {
		if item.Module == slug {
			view.Materials = append(view.Materials, item)
		}
	}
	if !view.Listed && len(view.Materials) == 0 {
		return domain.ModuleView{}, fmt.Errorf("%w: module %q", apperrors.ErrNotFound, slug)
	}
	if view.Listed && !view.Module.Enabled {
		return domain.ModuleView{}, fmt.Errorf("%w: %s", apperrors.ErrModuleDisabled, slug)
	}

	headings := append([]string{}, view.Module.Headings...)
	for _, item := range view.Materials {
		if item.Locked() {
			if !view.Listed {
				return domain.ModuleView{}, fmt.Errorf("%w: %s costs %d XP", apperrors.ErrMaterialLocked, item.ID, item.Cost)
			}
			continue
		}
		headings = appendMissing(headings, item.Headings)
	}
	view.Content, err = s.moduleContent(ctx, slug, headings)
	if err != nil {
		return domain.ModuleView{}, err
	}
	return view, nil
}

func (s *MaterialsService) moduleList(ctx context.Context) ([]domain.Module, error) {
	if s.modules == nil {
		return nil, nil
	}
	return s.modules.Modules(ctx)
}

func appendMissing(headings, more []string) []string {
	for _, h := range more {
		dup := false
		for _, have := range headings {
			if strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(h)) {
				dup = true
				break
			}
		}
		if !dup {
			headings = append(headings, h)
		}
	}
	return headings
}

func (s *MaterialsService) moduleContent(ctx context.Context, module string, headings []string) (string, error) {
	if s.sourceFile == "" {
		return domain.MissingSource, nil
	}
	markdown, err := s.mdReader.Read(ctx, s.sourceFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.MissingSource, nil
		}
		return "", err
	}
	return domain.ModuleContent(markdown, module, headings), nil
}

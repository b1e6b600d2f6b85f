package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	"fathom/internal/modules/materials/domain"
	materialsout "fathom/internal/modules/materials/port/out"
)

type LocalPDFReader struct{}

func NewLocalPDFReader() materialsout.PDFReader {
	return &LocalPDFReader{}
}

// ReadPage extracts the text runs of one page. Pages past the end clamp to the last page.
func (r *LocalPDFReader) ReadPage(ctx context.Context, path string, page int) (result domain.Page, total int, err error) {
	if err := ctx.Err(); err != nil {
		return domain.Page{}, 0, err
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("read pdf page %d: malformed content: %v", page, p)
		}
	}()
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Page{}, 0, fmt.Errorf("open pdf: %w", err)
	}
	total = doc.NumPage()
	if total == 0 {
		return domain.Page{Number: 1}, 0, nil
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	p := doc.Page(page)
	if p.V.IsNull() {
		return domain.Page{}, total, fmt.Errorf("pdf page %d is null", page)
	}
	var b strings.Builder
	for _, text := range p.Content().Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text.S)
	}
	return domain.Page{Number: page, Text: b.String()}, total, nil
}

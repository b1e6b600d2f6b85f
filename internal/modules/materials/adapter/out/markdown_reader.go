package out

import (
	"context"
	"fmt"
	"os"

	materialsout "fathom/internal/modules/materials/port/out"
	"fathom/internal/platform/storeio"
)

type LocalMarkdownReader struct{}

func NewLocalMarkdownReader() materialsout.MarkdownReader {
	return &LocalMarkdownReader{}
}

func (r *LocalMarkdownReader) Read(ctx context.Context, path string) (string, error) {
	var content string
	err := storeio.Run(ctx, func() error {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read materials markdown: %w", err)
		}
		content = string(b)
		return nil
	})
	return content, err
}

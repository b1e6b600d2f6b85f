package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fathom/internal/modules/progression/domain"
	progressout "fathom/internal/modules/progression/port/out"
)

// YAMLCatalogStore reads rule and shop overrides from catalog.yaml. Fields missing from the
// file keep their built-in defaults; lists given in the file replace the defaults wholesale.
type YAMLCatalogStore struct {
	path string
}

func NewYAMLCatalogStore(path string) progressout.CatalogStore {
	return &YAMLCatalogStore{path: path}
}

func (s *YAMLCatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	catalog := domain.DefaultCatalog()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("invalid catalog %s: %w", s.path, err)
	}
	return catalog, nil
}

// WriteDefaultCatalog seeds path with the built-in catalog unless a file already exists.
func WriteDefaultCatalog(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create catalog dir: %w", err)
	}
	raw, err := yaml.Marshal(domain.DefaultCatalog())
	if err != nil {
		return false, fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return false, fmt.Errorf("write catalog: %w", err)
	}
	return true, nil
}

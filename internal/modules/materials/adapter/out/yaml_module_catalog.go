package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fathom/internal/modules/materials/domain"
	materialsout "fathom/internal/modules/materials/port/out"
	"fathom/internal/platform/storeio"
)

type moduleFile struct {
	Modules []domain.Module `yaml:"modules"`
}

// YAMLModuleCatalog reads the module grid from modules.yaml. Without the file the built-in
// modules are served; a file replaces them wholesale.
type YAMLModuleCatalog struct {
	path string
}

func NewYAMLModuleCatalog(path string) materialsout.ModuleCatalog {
	return &YAMLModuleCatalog{path: path}
}

func (c *YAMLModuleCatalog) Modules(ctx context.Context) ([]domain.Module, error) {
	var modules []domain.Module
	err := storeio.Run(ctx, func() error {
		raw, err := os.ReadFile(c.path)
		if err != nil {
			if os.IsNotExist(err) {
				modules = domain.DefaultModules()
				return nil
			}
			return fmt.Errorf("read modules: %w", err)
		}
		var file moduleFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("decode modules %s: %w", c.path, err)
		}
		if err := domain.ValidateModules(file.Modules); err != nil {
			return fmt.Errorf("invalid modules %s: %w", c.path, err)
		}
		modules = file.Modules
		return nil
	})
	return modules, err
}

// WriteDefaultModules seeds path with the built-in modules unless a file already exists.
func WriteDefaultModules(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create modules dir: %w", err)
	}
	raw, err := yaml.Marshal(moduleFile{Modules: domain.DefaultModules()})
	if err != nil {
		return false, fmt.Errorf("marshal modules: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return false, fmt.Errorf("write modules: %w", err)
	}
	return true, nil
}

package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	materialsout "fathom/internal/modules/materials/port/out"
)

type OSExternalLauncher struct{}

func NewOSExternalLauncher() materialsout.ExternalLauncher {
	return &OSExternalLauncher{}
}

// Open hands the file to the desktop viewer without waiting for it to exit.
func (l *OSExternalLauncher) Open(ctx context.Context, target string) error {
	var name string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "linux", "freebsd":
		name = "xdg-open"
	default:
		return fmt.Errorf("external viewer is not supported on %s", runtime.GOOS)
	}
	if err := exec.CommandContext(context.WithoutCancel(ctx), name, target).Start(); err != nil {
		return fmt.Errorf("launch %s: %w", name, err)
	}
	return nil
}

package out_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	chatout "fathom/internal/modules/chat/adapter/out"
	"fathom/internal/modules/chat/domain"
)

func TestPluginResponderIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the responder plugin binary")
	}
	binPath := buildResponderPlugin(t)
	responder := chatout.NewPluginResponder(binPath, nil)
	defer responder.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta, err := responder.Metadata(ctx)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if meta.Name != "reference-responder" {
		t.Fatalf("unexpected plugin name: %s", meta.Name)
	}

	for i := 0; i < 3; i++ {
		reply, err := responder.Reply(ctx, "I am so worried about everything")
		if err != nil {
			t.Fatalf("reply: %v", err)
		}
		found := false
		for _, tpl := range domain.Templates(domain.CategoryAnxious) {
			if tpl == reply {
				found = true
			}
		}
		if !found {
			t.Fatalf("reply %q is not an anxious template", reply)
		}
	}
}

func buildResponderPlugin(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "responder-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/responder")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build responder plugin: %v\n%s", err, string(out))
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}

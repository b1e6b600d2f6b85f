package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// SplitFrontmatter separates a leading YAML block from the note body.
// Notes edited on Windows may carry CRLF endings; they are normalised first.
// A note without a leading fence has empty metadata.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return map[string]any{}, content, nil
	}
	rest := content[len(fence)+1:]

	var raw, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	case rest == fence:
	default:
		idx := strings.Index(rest, "\n"+fence+"\n")
		if idx < 0 {
			if !strings.HasSuffix(rest, "\n"+fence) {
				return nil, "", fmt.Errorf("invalid frontmatter: missing closing fence")
			}
			idx = len(rest) - len(fence) - 1
			raw = rest[:idx]
			break
		}
		raw = rest[:idx]
		body = rest[idx+len(fence)+2:]
	}

	meta := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return meta, body, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// RenderFrontmatter writes meta as a fenced YAML block followed by a blank line and body.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(fence + "\n")
	b.Write(raw)
	b.WriteString(fence + "\n")
	if !strings.HasPrefix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String(), nil
}

package markdown

import "strings"

// ReplaceManagedBlock swaps the generated text between start and end, or appends a
// new block after a blank line when body has none. Text outside the block is untouched.
func ReplaceManagedBlock(body, start, end, generated string) string {
	block := start + "\n" + generated + "\n" + end
	if i := strings.Index(body, start); i >= 0 {
		if j := strings.Index(body[i:], end); j >= 0 {
			return body[:i] + block + body[i+j+len(end):]
		}
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}

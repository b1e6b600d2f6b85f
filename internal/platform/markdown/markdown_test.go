package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := RenderFrontmatter(map[string]any{"id": "e1", "purpose": "daily-reflection"}, "Body text\n")
	require.NoError(t, err)
	assert.Equal(t, "---\nid: e1\npurpose: daily-reflection\n---\n\nBody text\n", rendered)

	meta, body, err := SplitFrontmatter(rendered)
	require.NoError(t, err)
	assert.Equal(t, "e1", meta["id"])
	assert.Equal(t, "\nBody text\n", body)
}

func TestSplitFrontmatterVariants(t *testing.T) {
	t.Parallel()

	meta, body, err := SplitFrontmatter("no fence here")
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "no fence here", body)

	meta, body, err = SplitFrontmatter("---\r\nid: e2\r\n---\r\ntext\r\n")
	require.NoError(t, err)
	assert.Equal(t, "e2", meta["id"])
	assert.Equal(t, "text\n", body)

	meta, body, err = SplitFrontmatter("---\nid: e3\n---")
	require.NoError(t, err)
	assert.Equal(t, "e3", meta["id"])
	assert.Empty(t, body)

	meta, body, err = SplitFrontmatter("---\n---\nonly body")
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "only body", body)

	_, _, err = SplitFrontmatter("---\nid: e4\nno closing fence")
	require.Error(t, err)
}

func TestManagedBlock(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"

	body := ReplaceManagedBlock("# Notes\n", start, end, "first")
	assert.Equal(t, "# Notes\n\n<!-- s -->\nfirst\n<!-- e -->\n", body)

	body = ReplaceManagedBlock(body+"after\n", start, end, "second")
	assert.Equal(t, "# Notes\n\n<!-- s -->\nsecond\n<!-- e -->\nafter\n", body)

	assert.Equal(t, body, ReplaceManagedBlock(body, start, end, "second"))

	assert.Equal(t, "<!-- s -->\nx\n<!-- e -->\n", ReplaceManagedBlock("  ", start, end, "x"))
	assert.Equal(t, "text\n\n<!-- s -->\nx\n<!-- e -->\n", ReplaceManagedBlock("text", start, end, "x"))
}

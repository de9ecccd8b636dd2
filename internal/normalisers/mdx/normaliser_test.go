package mdx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclane/doclane-cli/internal/core/domain"
)

func normalise(t *testing.T, raw string) string {
	t.Helper()
	out, err := New().Normalise(raw)
	require.NoError(t, err)
	return out
}

func TestNormalise_HeadingBoldInlineCode(t *testing.T) {
	out := normalise(t, "# Hello\n\nThis is **bold** and `code`.")
	assert.Equal(t, "Hello This is bold and .", out)
}

func TestNormalise_ImagesAndLinksKeepLabel(t *testing.T) {
	out := normalise(t, "![alt](img.png) see [link](url)")
	assert.Equal(t, "alt see link", out)
}

func TestNormalise_FencedBlockRemovedEntirely(t *testing.T) {
	out := normalise(t, "before\n```js\nconsole.log(1)\n```\nafter")
	assert.Equal(t, "before after", out)
	assert.NotContains(t, out, "console.log")
}

func TestNormalise_MarkupTags(t *testing.T) {
	out := normalise(t, "<Callout type=\"info\">inside</Callout> outside")
	assert.Equal(t, "inside outside", out)
}

func TestNormalise_ExportAndImportLines(t *testing.T) {
	raw := "import { Tab } from 'nextra'\nexport const meta = { title: 'x' }\nBody text"
	out := normalise(t, raw)
	assert.Equal(t, "Body text", out)
}

func TestNormalise_ItalicAndUnderscore(t *testing.T) {
	assert.Equal(t, "a b", normalise(t, "*a* _b_"))
}

func TestNormalise_CommentBlocks(t *testing.T) {
	out := normalise(t, "keep {/* secret note */} this")
	assert.Equal(t, "keep this", out)
}

func TestNormalise_HorizontalRules(t *testing.T) {
	out := normalise(t, "above\n---\nbelow\n--------\nend")
	assert.Equal(t, "above below end", out)
}

func TestNormalise_WhitespaceCollapsed(t *testing.T) {
	out := normalise(t, "  a \t b\n\n\n c  ")
	assert.Equal(t, "a b c", out)
}

func TestNormalise_Idempotent(t *testing.T) {
	inputs := []string{
		"# Hello\n\nThis is **bold** and `code`.",
		"![alt](img.png) see [link](url)",
		"import x from 'y'\nexport const a = 1\n\n## Title\n\n```sh\nls\n```\n\n*em* __strong__\n\n---\n\nplain",
		"",
		"already plain text",
		"snake_case and *stars*",
	}
	n := New()
	for _, in := range inputs {
		once, err := n.Normalise(in)
		require.NoError(t, err)
		twice, err := n.Normalise(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	_, err := New().Normalise(string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNormalization))
}

func TestNormalise_EmptyInput(t *testing.T) {
	assert.Equal(t, "", normalise(t, ""))
}

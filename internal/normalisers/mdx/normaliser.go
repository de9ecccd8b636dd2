// Package mdx strips MDX structural markup from documentation files,
// leaving plain prose for the processing service.
package mdx

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// rules run in a fixed order; later rules assume earlier ones already
// removed structural noise. Each rule is applied globally before the next,
// and the whole pipeline is idempotent.
var rules = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`<[^>]*>`), ""},                             // markup tags
	{regexp.MustCompile(`(?m)^\s*export\s+const\s+\w+\s*=.*$`), ""}, // export metadata
	{regexp.MustCompile(`(?m)^\s*import\s+.*$`), ""},                // import declarations
	{regexp.MustCompile(`(?m)^#{1,6} `), ""},                        // heading markers, text kept
	{regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`), "$1"},           // images and links keep the label
	{regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`), "$1$2"},     // bold
	{regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`), "$1$2"},           // italic
	{regexp.MustCompile("(?s)```.*?```"), ""},                       // fenced code blocks, content removed
	{regexp.MustCompile("`[^`]*`"), ""},                             // inline code spans, content removed
	{regexp.MustCompile(`(?s)\{/\*.*?\*/\}`), ""},                   // comment blocks
	{regexp.MustCompile(`(?s)<!--.*?-->`), ""},                      // html comment remnants
	{regexp.MustCompile(`-{3,}`), ""},                               // horizontal rules
	{regexp.MustCompile(`\s+`), " "},                                // collapse whitespace
}

// Normaliser converts MDX documents to plain prose.
type Normaliser struct{}

// New creates a new MDX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise applies the stripping rules in order and trims the result.
// The only failure mode is malformed input; callers drop the file and
// continue.
func (n *Normaliser) Normalise(raw string) (string, error) {
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", domain.ErrNormalization)
	}

	out := raw
	for _, r := range rules {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	return strings.TrimSpace(out), nil
}

package outline

import (
	"bytes"
	"testing"

	"github.com/dtnitsch/wiki-outline/models"
	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestFormatMarkdown(t *testing.T) {
	got := FormatMarkdown([]models.Heading{
		{Level: 1, Text: "France"},
		{Level: 2, Text: "History"},
		{Level: 3, Text: "Ancient"},
	})
	assert.Equal(t, "## Contents\n\n# France\n\n## History\n\n### Ancient\n\n", got)
}

func TestFormatMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "## Contents\n\n", FormatMarkdown(nil))
}

func TestFormatMarkdownDoesNotEscape(t *testing.T) {
	got := FormatMarkdown([]models.Heading{{Level: 2, Text: "*Bold* [x] _y_"}})
	assert.Equal(t, "## Contents\n\n## *Bold* [x] _y_\n\n", got)
}

// Re-parsing the outline must yield the same heading levels, prefixed by the
// Contents header.
func TestFormatMarkdownRoundTrip(t *testing.T) {
	headings := []models.Heading{
		{Level: 1, Text: "Chile"},
		{Level: 2, Text: "Etymology"},
		{Level: 2, Text: "History"},
		{Level: 3, Text: "Early history"},
		{Level: 4, Text: "Inca"},
		{Level: 5, Text: "Roads"},
		{Level: 6, Text: "Bridges"},
	}
	source := []byte(FormatMarkdown(headings))

	var levels []int
	var texts []string
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var buf bytes.Buffer
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					buf.Write(txt.Segment.Value(source))
				}
			}
			levels = append(levels, h.Level)
			texts = append(texts, buf.String())
		}
		return ast.WalkContinue, nil
	})

	assert.Equal(t, []int{2, 1, 2, 2, 3, 4, 5, 6}, levels)
	assert.Equal(t, []string{"Contents", "Chile", "Etymology", "History", "Early history", "Inca", "Roads", "Bridges"}, texts)
}

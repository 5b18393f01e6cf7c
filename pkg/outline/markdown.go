package outline

import (
	"strings"

	"github.com/dtnitsch/wiki-outline/models"
)

const contentsHeader = "## Contents\n\n"

// FormatMarkdown renders headings as a Markdown outline. Heading text is
// written verbatim; Markdown special characters are not escaped.
func FormatMarkdown(headings []models.Heading) string {
	var sb strings.Builder
	sb.WriteString(contentsHeader)
	for _, h := range headings {
		sb.WriteString(h.Markdown())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

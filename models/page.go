package models

import "strings"

// Heading is one H1-H6 element of a fetched page.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Markdown renders the heading as an ATX heading line.
func (h Heading) Markdown() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// OutlineResponse is the JSON body returned for a successful lookup.
type OutlineResponse struct {
	Outline string `json:"outline" yaml:"outline"`
}

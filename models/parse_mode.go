package models

// Scope selects which part of a fetched page headings are collected from.
type Scope string

const (
	// ScopeDocument walks every heading in the page, navigation included.
	ScopeDocument Scope = "document"
	// ScopeArticle walks only the main article content found by readability.
	ScopeArticle Scope = "article"
)

// OrDefault returns ScopeDocument for an unset scope.
func (s Scope) OrDefault() Scope {
	if s == "" {
		return ScopeDocument
	}
	return s
}

package models

// OutlineRequest is built from the incoming query string and discarded once
// the outline has been produced.
type OutlineRequest struct {
	Country string `json:"country"`

	// Optional; defaults to ScopeDocument.
	Scope Scope `json:"scope,omitempty"`
}

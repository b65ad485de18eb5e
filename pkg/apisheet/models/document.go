package models

// Document is the projection of a parsed API description consumed by the
// layout package.
type Document struct {
	// Title, Version and Description come from the info object.
	Title       string `json:"title,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	// SourceVersion is the OpenAPI/Swagger version of the input ("3.0.3", "2.0").
	SourceVersion string `json:"source_version,omitempty"`
	// Operations in document order: paths as declared, methods as declared per path.
	Operations []Operation `json:"operations"`
	// Warnings are non-fatal issues met while reading the document.
	Warnings []string `json:"warnings,omitempty"`
}

package models

// Method is an upper-case HTTP method name.
type Method string

// Methods in the order they are listed when the document order is unknown.
const (
	MethodGet     Method = "GET"
	MethodPut     Method = "PUT"
	MethodPost    Method = "POST"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodPatch   Method = "PATCH"
	MethodTrace   Method = "TRACE"
	MethodQuery   Method = "QUERY"
)

// Operation is one (path, method) pair of the API description.
type Operation struct {
	// Path is the path template, e.g. "/pets/{id}".
	Path string `json:"path"`
	// Method is the HTTP method.
	Method Method `json:"method"`
	// OperationID is the optional operationId.
	OperationID string `json:"operation_id,omitempty"`

	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	// PathSummary and PathDescription come from the enclosing path item.
	PathSummary     string   `json:"path_summary,omitempty"`
	PathDescription string   `json:"path_description,omitempty"`
	Deprecated      bool     `json:"deprecated,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	// Parameters in declared order, path-level parameters first.
	Parameters []Parameter `json:"parameters,omitempty"`
	// RequestBody is nil when the operation takes no body.
	RequestBody *RequestBody `json:"request_body,omitempty"`
	// Responses in declared order.
	Responses []Response `json:"responses,omitempty"`
}

// Parameter is a single operation parameter.
type Parameter struct {
	Name string `json:"name"`
	// In is the parameter location: "path", "query", "header" or "cookie".
	In          string `json:"in"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	Schema      Schema `json:"-"`
}

// RequestBody describes the body accepted by an operation.
type RequestBody struct {
	Description string      `json:"description,omitempty"`
	Required    bool        `json:"required,omitempty"`
	Content     []MediaType `json:"content,omitempty"`
}

// Response describes one declared status code of an operation.
type Response struct {
	// StatusCode is the status code key, e.g. "200", "4XX" or "default".
	StatusCode  string      `json:"status_code"`
	Description string      `json:"description,omitempty"`
	Headers     []Header    `json:"headers,omitempty"`
	Content     []MediaType `json:"content,omitempty"`
}

// MediaType pairs a content type with its schema.
type MediaType struct {
	ContentType string `json:"content_type"`
	Schema      Schema `json:"-"`
}

// Header is a response header.
type Header struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Schema      Schema `json:"-"`
}

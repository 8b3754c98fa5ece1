package http

// ErrorResponse is the error body shape: a single detail field with
// enough text to reconstruct the actionable cause. Kept compatible
// with the API's original consumers.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// ValidationError represents one request validation failure.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

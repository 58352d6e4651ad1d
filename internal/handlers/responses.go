package handlers

import "github.com/nfrund/folio/internal/loader"

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse reports what the service has loaded so far.
type HealthResponse struct {
	Status    string       `json:"status"`
	Loader    loader.State `json:"loader"`
	LivePages int          `json:"live_pages"`
	SiteError string       `json:"site_error,omitempty"`
}

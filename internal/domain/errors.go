package domain

import "errors"

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeNotFound   = "not_found"
	ErrorTypeConflict   = "conflict"
	ErrorTypeInternal   = "internal_error"
	ErrorTypeAuth       = "unauthorized"
)

// Sentinel errors shared across repositories and services
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateModel    = errors.New("a product with this model name already exists")
	ErrInvalidCategory   = errors.New("unknown product category")
	ErrCompanyNotActive  = errors.New("company is not active")
	ErrEmptyDocumentPath = errors.New("document has no file path")
)

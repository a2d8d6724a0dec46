// Package types provides the request and response bodies of the HTTP API.
package types

import (
	"github.com/getmockd/mockmaster/pkg/generator"
	"github.com/getmockd/mockmaster/pkg/schema"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error  string         `json:"error"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

// HealthResponse is a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// GenerateRequest is the body of POST /api/generate and POST /api/export/:format.
// Every member is optional.
type GenerateRequest struct {
	// Schema overrides the stored schema for this request.
	Schema schema.Schema `json:"schema,omitempty"`
	// Count defaults to the configured default and is capped at maxCount.
	Count *int `json:"count,omitempty"`
	// Seed makes the output reproducible.
	Seed *uint64 `json:"seed,omitempty"`
}

// GenerateResponse is the body returned by POST /api/generate.
type GenerateResponse struct {
	ID         string            `json:"id"`
	Count      int               `json:"count"`
	DurationMs float64           `json:"durationMs"`
	Rows       generator.Dataset `json:"rows"`
}

// SchemaResponse describes the stored schema.
type SchemaResponse struct {
	Fields   schema.Schema  `json:"fields"`
	Version  uint64         `json:"version"`
	Warnings []schema.Issue `json:"warnings,omitempty"`
}

// FieldTypeInfo describes one field type.
type FieldTypeInfo struct {
	Type        schema.FieldType `json:"type"`
	Description string           `json:"description"`
}

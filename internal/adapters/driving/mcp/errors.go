// Package mcp provides an MCP (Model Context Protocol) server adapter for
// churnlens. It lets AI assistants like Claude query the churn index and
// the external classifier.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

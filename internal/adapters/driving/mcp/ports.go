package mcp

import (
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions over the index artifact.
	Query driving.QueryService

	// Insight exposes the external churn classifier. Optional; the
	// predict and explain tools are not registered without it.
	Insight driving.InsightService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}

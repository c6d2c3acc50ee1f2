package driven

import (
	"context"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// RecordSource supplies the ordered structured records to index.
// Parsing raw file formats is the adapter's job; the core only ever
// sees field-name to value mappings in a stable order.
type RecordSource interface {
	// Records returns every record in source order.
	Records(ctx context.Context) ([]domain.Record, error)
}

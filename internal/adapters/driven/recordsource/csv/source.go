// Package csv reads structured records from a header-mapped CSV file.
// This is the only place in the repository that parses a raw file
// format; the core only ever sees ordered field-to-value mappings.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// Source reads records from one CSV file. The first row is the header;
// every later row becomes one record in file order.
type Source struct {
	path string
}

// NewSource creates a record source for the given CSV file.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Records returns every record in file order.
func (s *Source) Records(ctx context.Context) ([]domain.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening record source: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var records []domain.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("CSV line %d has %d fields, header has %d", line, len(row), len(header))
		}

		rec := make(domain.Record, len(header))
		for i, field := range header {
			rec[field] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

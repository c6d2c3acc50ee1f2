// Package sqlite persists index artifacts as single SQLite database
// files. One file holds all four artifact sections: a one-row manifest,
// the documents, the vectors, and the metadata. Writes go to a
// temporary file in the target directory and are renamed into place, so
// a crashed build never leaves a loadable half-artifact behind.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

const schema = `
CREATE TABLE manifest (
	id             INTEGER PRIMARY KEY CHECK (id = 1),
	build_id       TEXT    NOT NULL,
	model_id       TEXT    NOT NULL,
	dimension      INTEGER NOT NULL,
	document_count INTEGER NOT NULL,
	created_at     TEXT    NOT NULL
);
CREATE TABLE documents (
	position INTEGER PRIMARY KEY,
	text     TEXT NOT NULL
);
CREATE TABLE vectors (
	position  INTEGER PRIMARY KEY,
	embedding BLOB NOT NULL
);
CREATE TABLE metadata (
	position INTEGER PRIMARY KEY,
	labels   TEXT NOT NULL
);`

// ArtifactStore reads and writes artifacts as SQLite files. Saves to
// the same store serialise on an internal mutex; across processes, the
// atomic rename means the last writer wins.
type ArtifactStore struct {
	mu sync.Mutex
}

// NewArtifactStore creates an artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// Save writes the artifact to location as one atomic unit.
func (s *ArtifactStore) Save(ctx context.Context, artifact *domain.Artifact, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("refusing to persist inconsistent artifact: %w", err)
	}

	dir := filepath.Dir(location)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.db")
	if err != nil {
		return fmt.Errorf("creating temporary artifact: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := s.writeArtifact(ctx, artifact, tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, location); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing artifact: %w", err)
	}
	return nil
}

func (s *ArtifactStore) writeArtifact(ctx context.Context, artifact *domain.Artifact, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening temporary artifact: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating artifact schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning artifact transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO manifest (id, build_id, model_id, dimension, document_count, created_at)
		VALUES (1, ?, ?, ?, ?, ?)`,
		artifact.BuildID, artifact.ModelID, artifact.Dimension,
		artifact.Size(), artifact.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	for i := range artifact.Documents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (position, text) VALUES (?, ?)`,
			i, artifact.Documents[i].Text); err != nil {
			return fmt.Errorf("writing document %d: %w", i, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO vectors (position, embedding) VALUES (?, ?)`,
			i, float32SliceToBytes(artifact.Vectors[i])); err != nil {
			return fmt.Errorf("writing vector %d: %w", i, err)
		}

		labels, err := json.Marshal(artifact.Metadata[i])
		if err != nil {
			return fmt.Errorf("encoding metadata %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO metadata (position, labels) VALUES (?, ?)`,
			i, string(labels)); err != nil {
			return fmt.Errorf("writing metadata %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing artifact: %w", err)
	}
	return nil
}

// Load reads the artifact back and cross-checks every section against
// the manifest.
func (s *ArtifactStore) Load(ctx context.Context, location string) (*domain.Artifact, error) {
	if _, err := os.Stat(location); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMissing, location)
		}
		return nil, fmt.Errorf("checking artifact: %w", err)
	}

	db, err := sql.Open("sqlite", location)
	if err != nil {
		return nil, fmt.Errorf("opening artifact: %w", err)
	}
	defer db.Close()

	artifact := &domain.Artifact{}
	var createdAt string
	var count int
	row := db.QueryRowContext(ctx,
		`SELECT build_id, model_id, dimension, document_count, created_at FROM manifest WHERE id = 1`)
	if err := row.Scan(&artifact.BuildID, &artifact.ModelID, &artifact.Dimension, &count, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: manifest missing in %s", domain.ErrArtifactCorrupt, location)
		}
		return nil, fmt.Errorf("%w: reading manifest: %v", domain.ErrArtifactCorrupt, err)
	}
	if artifact.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("%w: bad created_at %q", domain.ErrArtifactCorrupt, createdAt)
	}

	if err := s.loadDocuments(ctx, db, artifact, count); err != nil {
		return nil, err
	}
	if err := s.loadVectors(ctx, db, artifact, count); err != nil {
		return nil, err
	}
	if err := s.loadMetadata(ctx, db, artifact, count); err != nil {
		return nil, err
	}

	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return artifact, nil
}

func (s *ArtifactStore) loadDocuments(ctx context.Context, db *sql.DB, artifact *domain.Artifact, count int) error {
	rows, err := db.QueryContext(ctx, `SELECT position, text FROM documents ORDER BY position`)
	if err != nil {
		return fmt.Errorf("%w: reading documents: %v", domain.ErrArtifactCorrupt, err)
	}
	defer rows.Close()

	artifact.Documents = make([]domain.Document, 0, count)
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.Position, &doc.Text); err != nil {
			return fmt.Errorf("%w: scanning document: %v", domain.ErrArtifactCorrupt, err)
		}
		if doc.Position != len(artifact.Documents) {
			return fmt.Errorf("%w: document positions not contiguous at %d", domain.ErrArtifactCorrupt, doc.Position)
		}
		artifact.Documents = append(artifact.Documents, doc)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating documents: %v", domain.ErrArtifactCorrupt, err)
	}
	if len(artifact.Documents) != count {
		return fmt.Errorf("%w: manifest says %d documents, found %d",
			domain.ErrArtifactCorrupt, count, len(artifact.Documents))
	}
	return nil
}

func (s *ArtifactStore) loadVectors(ctx context.Context, db *sql.DB, artifact *domain.Artifact, count int) error {
	rows, err := db.QueryContext(ctx, `SELECT position, embedding FROM vectors ORDER BY position`)
	if err != nil {
		return fmt.Errorf("%w: reading vectors: %v", domain.ErrArtifactCorrupt, err)
	}
	defer rows.Close()

	artifact.Vectors = make([][]float32, 0, count)
	for rows.Next() {
		var position int
		var blob []byte
		if err := rows.Scan(&position, &blob); err != nil {
			return fmt.Errorf("%w: scanning vector: %v", domain.ErrArtifactCorrupt, err)
		}
		if position != len(artifact.Vectors) {
			return fmt.Errorf("%w: vector positions not contiguous at %d", domain.ErrArtifactCorrupt, position)
		}
		if len(blob) != artifact.Dimension*4 {
			return fmt.Errorf("%w: vector %d has %d bytes, want %d",
				domain.ErrArtifactCorrupt, position, len(blob), artifact.Dimension*4)
		}
		artifact.Vectors = append(artifact.Vectors, bytesToFloat32Slice(blob))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating vectors: %v", domain.ErrArtifactCorrupt, err)
	}
	if len(artifact.Vectors) != count {
		return fmt.Errorf("%w: manifest says %d vectors, found %d",
			domain.ErrArtifactCorrupt, count, len(artifact.Vectors))
	}
	return nil
}

func (s *ArtifactStore) loadMetadata(ctx context.Context, db *sql.DB, artifact *domain.Artifact, count int) error {
	rows, err := db.QueryContext(ctx, `SELECT position, labels FROM metadata ORDER BY position`)
	if err != nil {
		return fmt.Errorf("%w: reading metadata: %v", domain.ErrArtifactCorrupt, err)
	}
	defer rows.Close()

	artifact.Metadata = make([]domain.Metadata, 0, count)
	for rows.Next() {
		var position int
		var labels string
		if err := rows.Scan(&position, &labels); err != nil {
			return fmt.Errorf("%w: scanning metadata: %v", domain.ErrArtifactCorrupt, err)
		}
		if position != len(artifact.Metadata) {
			return fmt.Errorf("%w: metadata positions not contiguous at %d", domain.ErrArtifactCorrupt, position)
		}
		var meta domain.Metadata
		if err := json.Unmarshal([]byte(labels), &meta); err != nil {
			return fmt.Errorf("%w: decoding metadata %d: %v", domain.ErrArtifactCorrupt, position, err)
		}
		artifact.Metadata = append(artifact.Metadata, meta)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating metadata: %v", domain.ErrArtifactCorrupt, err)
	}
	if len(artifact.Metadata) != count {
		return fmt.Errorf("%w: manifest says %d metadata entries, found %d",
			domain.ErrArtifactCorrupt, count, len(artifact.Metadata))
	}
	return nil
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice
// for storage. The encoding is bit-exact, so vectors round-trip without
// any floating-point drift.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a little-endian byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

func testArtifact() *domain.Artifact {
	return &domain.Artifact{
		BuildID:   "build-abc",
		ModelID:   "text-embedding-3-small",
		Dimension: 3,
		Vectors: [][]float32{
			{0.1, 0.2, 0.97},
			{1, 0, 0},
		},
		Documents: []domain.Document{
			{Position: 0, Text: "CustomerID: 0 | Account_Length: 128 | Churn: 0"},
			{Position: 1, Text: "CustomerID: 1 | Account_Length: 84 | Churn: 1"},
		},
		Metadata: []domain.Metadata{
			{"index": 0, "churn": 0},
			{"index": 1, "churn": 1},
		},
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC),
	}
}

func artifactPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "artifact.db")
}

func TestArtifactStore_RoundTrip(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	path := artifactPath(t)

	original := testArtifact()
	require.NoError(t, store.Save(ctx, original, path))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, original.BuildID, loaded.BuildID)
	assert.Equal(t, original.ModelID, loaded.ModelID)
	assert.Equal(t, original.Dimension, loaded.Dimension)
	assert.True(t, original.CreatedAt.Equal(loaded.CreatedAt))

	// Vectors are bit-exact, documents byte-for-byte.
	assert.Equal(t, original.Vectors, loaded.Vectors)
	assert.Equal(t, original.Documents, loaded.Documents)

	// JSON round-trips numbers as float64; compare by value.
	require.Len(t, loaded.Metadata, 2)
	assert.EqualValues(t, 0, loaded.Metadata[0]["index"])
	assert.EqualValues(t, 1, loaded.Metadata[1]["churn"])
}

func TestArtifactStore_RoundTrip_EmptyCorpus(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	path := artifactPath(t)

	original := &domain.Artifact{
		BuildID:   "build-empty",
		ModelID:   "m",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, original, path))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Size())
	assert.Equal(t, "build-empty", loaded.BuildID)
}

func TestArtifactStore_Load_Missing(t *testing.T) {
	store := NewArtifactStore()
	_, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestArtifactStore_Load_TruncatedDocuments(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	path := artifactPath(t)
	require.NoError(t, store.Save(ctx, testArtifact(), path))

	// Truncate the documents section directly on disk.
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM documents WHERE position = 1`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = store.Load(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)
}

func TestArtifactStore_Load_MissingManifest(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	path := artifactPath(t)
	require.NoError(t, store.Save(ctx, testArtifact(), path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM manifest`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = store.Load(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)
}

func TestArtifactStore_Load_MangledVectorBlob(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	path := artifactPath(t)
	require.NoError(t, store.Save(ctx, testArtifact(), path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE vectors SET embedding = X'0000' WHERE position = 0`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = store.Load(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)
}

func TestArtifactStore_Save_RejectsInconsistentArtifact(t *testing.T) {
	store := NewArtifactStore()
	path := artifactPath(t)

	broken := testArtifact()
	broken.Metadata = broken.Metadata[:1]

	err := store.Save(context.Background(), broken, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactCorrupt)

	// The failed save left nothing loadable behind.
	_, err = store.Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestArtifactStore_Save_Overwrite_LastWriterWins(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	path := artifactPath(t)

	first := testArtifact()
	require.NoError(t, store.Save(ctx, first, path))

	second := testArtifact()
	second.BuildID = "build-def"
	require.NoError(t, store.Save(ctx, second, path))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "build-def", loaded.BuildID)
}

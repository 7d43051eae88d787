package verity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/verity/core"
	"github.com/poiesic/verity/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.AnswerRepository())
		assert.NotNil(t, db.Embedder())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("with match config", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		config := match.DefaultConfig()
		config.Threshold = 0.5
		config.FilterByIntent = true

		db, err := NewDatabase(tmpDir, WithMatchConfig(config))
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 0.5, db.matchConfig.Threshold)
		assert.True(t, db.matchConfig.FilterByIntent)
	})

	t.Run("caller config is not mutated", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		config := match.DefaultConfig()
		config.Dimensions = 12

		db, err := NewDatabase(tmpDir, WithMatchConfig(config))
		require.NoError(t, err)
		defer db.Close()

		// The database syncs its own copy to the embedder's vector length
		assert.Equal(t, core.DefaultEmbeddingDimensions, db.matchConfig.Dimensions)
		assert.Equal(t, 12, config.Dimensions)
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.True(t, db.backend.IsClosed())
}

func TestDatabase_NewMatcher(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	defer db.Close()

	matcher, err := db.NewMatcher()
	require.NoError(t, err)
	assert.NotNil(t, matcher)
}

func TestDatabase_NewSubmissionPipeline(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	defer db.Close()

	pipeline, err := db.NewSubmissionPipeline()
	require.NoError(t, err)
	assert.NotNil(t, pipeline)
	pipeline.Release()
}

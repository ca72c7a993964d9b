package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/internal/store"
)

func TestFile_LoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "schools.json"))

	_, err := f.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFile_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	f := NewFile(filepath.Join(t.TempDir(), "nested", "schools.json"))

	require.NoError(t, f.Save(ctx, []byte(`[{"id":"a"}]`)))
	require.NoError(t, f.Save(ctx, []byte(`[]`)))

	blob, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(blob))
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArchivePutGet(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key := DocumentKey("supplier-1", "run-1", "prices.csv")
	content := []byte("size,brand,model,cost\n205/55R16,Michelin,Primacy 4,85.50\n")

	require.NoError(t, archive.Put(ctx, key, content, &Metadata{
		ContentType:  "text/csv",
		OriginalName: "prices.csv",
		SupplierID:   "supplier-1",
		RunID:        "run-1",
		UploadedAt:   time.Now(),
	}))

	got, err := archive.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	exists, err := archive.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	info, err := archive.GetInfo(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.NotEmpty(t, info.Checksum)
	require.NotNil(t, info.Metadata)
	assert.Equal(t, "supplier-1", info.Metadata.SupplierID)
}

func TestLocalArchiveListByPrefix(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, archive.Put(ctx, DocumentKey("sup-a", "run-1", "a.csv"), []byte("a"), nil))
	require.NoError(t, archive.Put(ctx, DocumentKey("sup-a", "run-2", "b.csv"), []byte("b"), nil))
	require.NoError(t, archive.Put(ctx, DocumentKey("sup-b", "run-3", "c.csv"), []byte("c"), nil))

	keys, err := archive.List(ctx, "sup-a/")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestLocalArchiveDelete(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key := "sup/run/file.pdf"
	require.NoError(t, archive.Put(ctx, key, []byte("%PDF"), &Metadata{}))
	require.NoError(t, archive.Delete(ctx, key))

	exists, err := archive.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalArchiveRejectsTraversal(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	err = archive.Put(context.Background(), "../escape.txt", []byte("x"), nil)
	require.Error(t, err)
}

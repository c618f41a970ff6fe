package filedock_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/filedock"
	"github.com/dmitrijs2005/filedock/collection/memdoc"
	"github.com/dmitrijs2005/filedock/store/localblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Round-trip across the real in-memory collection: construct from a
// document, save the original block, reload and compare.
func TestSaveAndReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	coll := memdoc.New("files")

	id, err := coll.Insert(ctx, &filedock.Document{Original: &filedock.FileInfo{Name: "old.txt"}})
	require.NoError(t, err)

	doc, err := coll.FindOne(ctx, id)
	require.NoError(t, err)

	rec := filedock.New(doc, filedock.WithCollection(coll))
	rec.SetName("new.txt")
	rec.SetSize(11)
	rec.SetType("text/plain")
	rec.SetKey("blobs/new.txt")

	require.NoError(t, rec.SaveOriginal(ctx))
	require.NoError(t, rec.Reload(ctx))

	assert.Equal(t, "new.txt", rec.Name())
	assert.Equal(t, int64(11), rec.Size())
	assert.Equal(t, "text/plain", rec.Type())
	assert.Equal(t, "blobs/new.txt", rec.Key())
}

func TestCopyLifecycleAcrossCollection(t *testing.T) {
	ctx := context.Background()
	coll := memdoc.New("files")

	id, err := coll.Insert(ctx, &filedock.Document{Original: &filedock.FileInfo{Name: "a.jpg", Type: "image/jpeg"}})
	require.NoError(t, err)

	doc, err := coll.FindOne(ctx, id)
	require.NoError(t, err)
	rec := filedock.New(doc, filedock.WithCollection(coll))

	rec.SetName("a-thumb.jpg", "thumbs")
	rec.SetType("image/jpeg", "thumbs")
	rec.SetKey("thumb-key", "thumbs")
	require.NoError(t, rec.SaveCopy(ctx, "thumbs"))

	require.NoError(t, rec.Reload(ctx))
	assert.True(t, rec.HasStored("thumbs"))
	assert.Equal(t, "a-thumb.jpg", rec.Name("thumbs"))

	// removing detaches the collection and deletes the persisted record
	require.NoError(t, rec.Remove(ctx))
	assert.Nil(t, rec.Collection())
	_, err = coll.FindOne(ctx, id)
	assert.ErrorIs(t, err, filedock.ErrNotFound)
}

func TestReadStreamThroughCollectionStore(t *testing.T) {
	ctx := context.Background()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "k1"), []byte("hello world"), 0o660))

	coll := memdoc.New("files")
	coll.RegisterStore(localblob.New("thumbs", root))

	id, err := coll.Insert(ctx, &filedock.Document{
		Copies: map[string]*filedock.FileInfo{"thumbs": {Name: "t.png", Key: "k1"}},
	})
	require.NoError(t, err)

	doc, err := coll.FindOne(ctx, id)
	require.NoError(t, err)
	rec := filedock.New(doc, filedock.WithCollection(coll))

	rc, err := rec.CreateReadStream(ctx, "thumbs", &filedock.ByteRange{Start: 0, End: 4})
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

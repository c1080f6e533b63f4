package inmemory

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donmikel/storefront/applications/server/domain"
)

func TestBlobStoragePutGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewBlobStorage("storage_0", 10, log.NewNopLogger())

	err := st.PutBlob(ctx, domain.Blob{Key: "a.png", ContentType: "image/png", Data: []byte("12345")})
	require.NoError(t, err)

	free, err := st.GetFreeSpace()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), free)

	blob, err := st.GetBlob(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", blob.ContentType)
	assert.Equal(t, []byte("12345"), blob.Data)

	require.NoError(t, st.DeleteBlob(ctx, "a.png"))

	free, err = st.GetFreeSpace()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), free)

	_, err = st.GetBlob(ctx, "a.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, st.DeleteBlob(ctx, "a.png"), domain.ErrNotFound)
}

func TestBlobStorageNotEnoughSpace(t *testing.T) {
	ctx := context.Background()
	st := NewBlobStorage("storage_0", 4, log.NewNopLogger())

	err := st.PutBlob(ctx, domain.Blob{Key: "big", Data: []byte("12345")})
	assert.ErrorIs(t, err, domain.ErrNotEnoughSpace)

	free, err := st.GetFreeSpace()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), free)
}

func TestBlobStorageRejectsExistingKey(t *testing.T) {
	ctx := context.Background()
	st := NewBlobStorage("storage_0", 10, log.NewNopLogger())

	require.NoError(t, st.PutBlob(ctx, domain.Blob{Key: "k", Data: []byte("first")}))

	err := st.PutBlob(ctx, domain.Blob{Key: "k", Data: []byte("second")})
	assert.ErrorIs(t, err, domain.ErrBlobExists)

	blob, err := st.GetBlob(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), blob.Data)

	free, err := st.GetFreeSpace()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), free)
}

func TestBlobStorageCopiesData(t *testing.T) {
	ctx := context.Background()
	st := NewBlobStorage("storage_0", 0, log.NewNopLogger())

	data := []byte("abc")
	require.NoError(t, st.PutBlob(ctx, domain.Blob{Key: "k", Data: data}))
	data[0] = 'z'

	blob, err := st.GetBlob(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), blob.Data)
}

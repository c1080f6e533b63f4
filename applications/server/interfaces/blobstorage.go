package interfaces

import (
	"context"

	"github.com/donmikel/storefront/applications/server/domain"
)

type BlobStorage interface {
	// PutBlob never overwrites; a taken key yields domain.ErrBlobExists.
	PutBlob(ctx context.Context, blob domain.Blob) error
	GetBlob(ctx context.Context, key string) (domain.Blob, error)
	DeleteBlob(ctx context.Context, key string) error
	GetFreeSpace() (uint64, error)
	GetStorageName() string
}

type StorageManager interface {
	PickStorage(ctx context.Context, size uint64) (BlobStorage, error)
	GetStorage(ctx context.Context, name string) (BlobStorage, error)
	AddStorage(ctx context.Context, name string, storage BlobStorage) error
}

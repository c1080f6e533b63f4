package inmemory

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/storefront/applications/server/domain"
	"github.com/donmikel/storefront/applications/server/interfaces"
)

const defaultCapacityInBytes = 100 * 1024 * 1024 // 100 Mb

type inMemoryBlobStorage struct {
	blobByKey map[string]domain.Blob
	freeSpace uint64
	name      string
	log       log.Logger
	mutex     sync.RWMutex
}

// NewBlobStorage returns a storage holding up to capacity bytes. Zero
// capacity means the default of 100 Mb.
func NewBlobStorage(name string, capacity uint64, logger log.Logger) interfaces.BlobStorage {
	if capacity == 0 {
		capacity = defaultCapacityInBytes
	}

	return &inMemoryBlobStorage{
		name:      name,
		log:       logger,
		blobByKey: map[string]domain.Blob{},
		freeSpace: capacity,
	}
}

func (m *inMemoryBlobStorage) GetStorageName() string {
	return m.name
}

func (m *inMemoryBlobStorage) PutBlob(ctx context.Context, blob domain.Blob) error {
	data := bytes.Clone(blob.Data)
	dataLen := uint64(len(data))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.blobByKey[blob.Key]; ok {
		return fmt.Errorf("blob %s in %s: %w", blob.Key, m.name, domain.ErrBlobExists)
	}

	if dataLen > m.freeSpace {
		return fmt.Errorf("%w in %s: need %s, have %s", domain.ErrNotEnoughSpace,
			m.name, humanize.Bytes(dataLen), humanize.Bytes(m.freeSpace))
	}

	blob.Data = data
	m.blobByKey[blob.Key] = blob
	m.freeSpace -= dataLen

	level.Info(m.log).Log("msg", "blob uploaded",
		"key", blob.Key,
		"storage", m.name,
		"size", humanize.Bytes(dataLen),
		"free_space", humanize.Bytes(m.freeSpace),
	)

	return nil
}

func (m *inMemoryBlobStorage) GetBlob(ctx context.Context, key string) (domain.Blob, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	blob, ok := m.blobByKey[key]
	if !ok {
		return domain.Blob{}, fmt.Errorf("blob %s in %s: %w", key, m.name, domain.ErrNotFound)
	}

	return blob, nil
}

func (m *inMemoryBlobStorage) DeleteBlob(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blob, ok := m.blobByKey[key]
	if !ok {
		return fmt.Errorf("blob %s in %s: %w", key, m.name, domain.ErrNotFound)
	}

	delete(m.blobByKey, key)
	m.freeSpace += uint64(len(blob.Data))

	level.Info(m.log).Log("msg", "blob deleted",
		"key", key,
		"storage", m.name,
		"free_space", humanize.Bytes(m.freeSpace),
	)

	return nil
}

func (m *inMemoryBlobStorage) GetFreeSpace() (uint64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.freeSpace, nil
}

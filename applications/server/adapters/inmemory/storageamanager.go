package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/storefront/applications/server/domain"
	"github.com/donmikel/storefront/applications/server/interfaces"
)

type storages []interfaces.BlobStorage

type sm struct {
	nameToStorage map[string]interfaces.BlobStorage
	storages      storages
	m             sync.Mutex
	logger        log.Logger
}

func NewStorageManager(logger log.Logger) interfaces.StorageManager {
	return &sm{
		nameToStorage: map[string]interfaces.BlobStorage{},
		storages:      []interfaces.BlobStorage{},
		logger:        logger,
	}
}

// PickStorage returns the storage with the most free space, provided it can
// hold size bytes.
func (s *sm) PickStorage(ctx context.Context, size uint64) (interfaces.BlobStorage, error) {
	s.m.Lock()
	defer s.m.Unlock()

	if len(s.storages) == 0 {
		return nil, domain.ErrStorageNotConfigured
	}

	sort.Stable(s.storages)

	picked := s.storages[len(s.storages)-1]
	free, err := picked.GetFreeSpace()
	if err != nil {
		return nil, fmt.Errorf("can't get free space of %s: %w", picked.GetStorageName(), err)
	}

	if free < size {
		return nil, fmt.Errorf("%w: need %s, largest storage %s has %s", domain.ErrNotEnoughSpace,
			humanize.Bytes(size), picked.GetStorageName(), humanize.Bytes(free))
	}

	level.Info(s.logger).Log("msg", "selected storage",
		"storage", picked.GetStorageName(),
		"candidates", s.storages,
	)

	return picked, nil
}

func (s *sm) GetStorage(ctx context.Context, name string) (interfaces.BlobStorage, error) {
	s.m.Lock()
	defer s.m.Unlock()

	st, ok := s.nameToStorage[name]
	if !ok {
		return nil, fmt.Errorf("storage with name = %s: %w", name, domain.ErrNotFound)
	}

	return st, nil
}

func (s *sm) AddStorage(ctx context.Context, name string, st interfaces.BlobStorage) error {
	s.m.Lock()
	defer s.m.Unlock()

	if _, ok := s.nameToStorage[name]; ok {
		return fmt.Errorf("storage with name = %s already added", name)
	}

	s.storages = append(
		s.storages,
		st,
	)

	s.nameToStorage[name] = st

	return nil
}

func (s storages) Len() int {
	return len(s)
}

func (s storages) Less(i, j int) bool {
	si, err := s[i].GetFreeSpace()
	if err != nil {
		return false
	}
	sj, err := s[j].GetFreeSpace()
	if err != nil {
		return false
	}

	return si < sj
}

func (s storages) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s storages) String() string {
	result := make([]string, 0, len(s))
	for _, storage := range s {
		result = append(result, storage.GetStorageName())
	}

	return strings.Join(result, ", ")
}

package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/donmikel/storefront/applications/server"
	"github.com/donmikel/storefront/applications/server/domain"
	"github.com/donmikel/storefront/applications/server/formdata"
	"github.com/donmikel/storefront/applications/server/interfaces"
)

const (
	defaultExtension   = "jpg"
	defaultContentType = "image/jpeg"

	blobPathPrefix = "/blob/"
)

type uploadService struct {
	storageManager interfaces.StorageManager
	publicURL      string
	token          string
	now            func() time.Time
}

// NewUploadService returns a service storing uploads in storageManager.
// Public URLs are built as publicURL + "/blob/<storage>/<key>". An empty
// token leaves the service unconfigured.
func NewUploadService(storageManager interfaces.StorageManager, publicURL, token string) server.UploadService {
	return &uploadService{
		storageManager: storageManager,
		publicURL:      strings.TrimSuffix(publicURL, "/"),
		token:          token,
		now:            time.Now,
	}
}

func (s *uploadService) Ready() error {
	if s.token == "" {
		return domain.ErrStorageNotConfigured
	}

	return nil
}

func (s *uploadService) Upload(ctx context.Context, contentType string, body []byte) (domain.UploadResult, error) {
	if err := s.Ready(); err != nil {
		return domain.UploadResult{}, err
	}

	if !strings.Contains(contentType, "multipart/form-data") {
		return domain.UploadResult{}, domain.ErrInvalidContentType
	}

	boundary, ok := formdata.Boundary(contentType)
	if !ok {
		return domain.UploadResult{}, domain.ErrMissingBoundary
	}

	upload, ok := firstFile(formdata.Decode(body, boundary))
	if !ok {
		return domain.UploadResult{}, domain.ErrNoFileFound
	}

	now := s.now()
	key := newBlobKey(now, extension(upload.Filename))

	storage, err := s.storageManager.PickStorage(ctx, uint64(len(upload.Data)))
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("can't pick storage: %w", err)
	}

	err = storage.PutBlob(ctx, domain.Blob{
		Key:         key,
		ContentType: upload.ContentType,
		Data:        upload.Data,
		CreatedAt:   now,
	})
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("can't put blob %s: %w", key, err)
	}

	return domain.UploadResult{
		URL:      s.publicURL + blobPathPrefix + storage.GetStorageName() + "/" + key,
		Filename: key,
	}, nil
}

func (s *uploadService) Delete(ctx context.Context, rawURL string) error {
	if err := s.Ready(); err != nil {
		return err
	}

	storageName, key, err := s.parseBlobURL(rawURL)
	if err != nil {
		return err
	}

	storage, err := s.storageManager.GetStorage(ctx, storageName)
	if err != nil {
		return fmt.Errorf("can't get storage: %w", err)
	}

	if err = storage.DeleteBlob(ctx, key); err != nil {
		return fmt.Errorf("can't delete blob: %w", err)
	}

	return nil
}

func (s *uploadService) GetBlob(ctx context.Context, storageName, key string) (domain.Blob, error) {
	storage, err := s.storageManager.GetStorage(ctx, storageName)
	if err != nil {
		return domain.Blob{}, fmt.Errorf("can't get storage: %w", err)
	}

	return storage.GetBlob(ctx, key)
}

// parseBlobURL accepts absolute URLs issued by Upload as well as bare
// "/blob/<storage>/<key>" paths.
func (s *uploadService) parseBlobURL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("can't parse url %q: %w", rawURL, domain.ErrNotFound)
	}

	p := u.Path
	if u.IsAbs() {
		base, err := url.Parse(s.publicURL)
		if err != nil || base.Host != u.Host {
			return "", "", fmt.Errorf("url %q is not served here: %w", rawURL, domain.ErrNotFound)
		}
		p = strings.TrimPrefix(p, strings.TrimSuffix(base.Path, "/"))
	}

	rest, ok := strings.CutPrefix(p, blobPathPrefix)
	if !ok {
		return "", "", fmt.Errorf("url %q is not a blob url: %w", rawURL, domain.ErrNotFound)
	}

	storageName, key, ok := strings.Cut(rest, "/")
	if !ok || storageName == "" || key == "" || strings.Contains(key, "/") {
		return "", "", fmt.Errorf("url %q is not a blob url: %w", rawURL, domain.ErrNotFound)
	}

	return storageName, key, nil
}

// firstFile returns the first part carrying a filename.
func firstFile(parts []formdata.Part) (domain.Upload, bool) {
	for _, part := range parts {
		if !part.IsFile() {
			continue
		}

		contentType := defaultContentType
		if part.ContentType != nil && *part.ContentType != "" {
			contentType = *part.ContentType
		}

		return domain.Upload{
			Filename:    *part.Filename,
			ContentType: contentType,
			Data:        part.Data,
		}, true
	}

	return domain.Upload{}, false
}

// extension returns the segment after the last dot of filename, or the whole
// name when there is no dot. Characters other than ASCII letters, digits, '-'
// and '_' are dropped to keep keys path-safe; an empty result becomes "jpg".
func extension(filename string) string {
	ext := filename
	if i := strings.LastIndexByte(filename, '.'); i != -1 {
		ext = filename[i+1:]
	}

	ext = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, ext)

	if ext == "" {
		return defaultExtension
	}

	return ext
}

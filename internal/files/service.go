package files

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"inkwell/internal/authz"
	"inkwell/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrDisabled           = errors.New("file storage is not configured")
	ErrInvalidFilename    = errors.New("invalid filename")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrInvalidKey         = errors.New("invalid file key")
)

// Service hands out presigned URLs for media under users/<id>/.
type Service struct {
	storage     storage.Service
	uploadTTL   time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

// NewService accepts a nil store; every call then fails with ErrDisabled.
func NewService(store storage.Service, uploadTTL time.Duration) *Service {
	if uploadTTL <= 0 {
		uploadTTL = DefaultUploadTTL
	}
	return &Service{
		storage:     store,
		uploadTTL:   uploadTTL,
		downloadTTL: DefaultDownloadTTL,
		now:         time.Now,
	}
}

func (s *Service) Enabled() bool { return s.storage != nil }

func ValidateFilename(name string) error {
	switch {
	case name == "", len(name) > MaxFilenameLength:
		return ErrInvalidFilename
	case strings.Contains(name, ".."), strings.ContainsAny(name, `/\`):
		return ErrInvalidFilename
	case path.Ext(name) == "":
		return fmt.Errorf("%w: missing extension", ErrInvalidFilename)
	}
	return nil
}

func ValidateContentType(contentType string) error {
	if !AllowedContentTypes[contentType] {
		return fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}
	return nil
}

// KeyPrefix is the namespace every upload by userID lands in.
func KeyPrefix(userID uuid.UUID) string {
	return "users/" + userID.String() + "/"
}

// fileKey is a storage key with the owner taken from its prefix.
type fileKey string

func (k fileKey) OwnerID() uuid.UUID {
	rest, ok := strings.CutPrefix(string(k), "users/")
	if !ok {
		return uuid.Nil
	}
	id, _, _ := strings.Cut(rest, "/")
	owner, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return owner
}

func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}

func (s *Service) UploadURL(ctx context.Context, userID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if s.storage == nil {
		return nil, ErrDisabled
	}
	if err := ValidateFilename(req.Filename); err != nil {
		return nil, err
	}
	if err := ValidateContentType(req.ContentType); err != nil {
		return nil, err
	}

	key := KeyPrefix(userID) + uuid.NewString() + "-" + req.Filename
	url, err := s.storage.PresignUpload(ctx, key, req.ContentType, s.uploadTTL)
	if err != nil {
		return nil, err
	}
	return &UploadURLResponse{
		UploadURL: url,
		FileKey:   key,
		ExpiresAt: s.now().Add(s.uploadTTL).Unix(),
	}, nil
}

func (s *Service) DownloadURL(ctx context.Context, key string) (*DownloadURLResponse, error) {
	if s.storage == nil {
		return nil, ErrDisabled
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	url, err := s.storage.PresignDownload(ctx, key, s.downloadTTL)
	if err != nil {
		return nil, err
	}
	return &DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   s.now().Add(s.downloadTTL).Unix(),
	}, nil
}

// Delete removes key if requesterID owns its namespace.
func (s *Service) Delete(ctx context.Context, key string, requesterID uuid.UUID) error {
	if s.storage == nil {
		return ErrDisabled
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if err := authz.Authorize(fileKey(key), requesterID); err != nil {
		return err
	}
	return s.storage.Delete(ctx, key)
}

func (s *Service) Health(ctx context.Context) error {
	if s.storage == nil {
		return ErrDisabled
	}
	return s.storage.Health(ctx)
}

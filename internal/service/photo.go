package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/models"
)

// MaxPhotoSize is the largest accepted journal photo.
const MaxPhotoSize = 5 << 20

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// S3PhotoStore writes photos to an S3 bucket.
type S3PhotoStore struct {
	s3Config *config.S3Config
}

var _ PhotoStore = (*S3PhotoStore)(nil)

func NewS3PhotoStore(s3Config *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{s3Config: s3Config}
}

func (s *S3PhotoStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.s3Config.PublicURL(key), nil
}

// PhotoService attaches photos to journal entries.
type PhotoService struct {
	journal *JournalService
	store   PhotoStore
	log     *zap.Logger
}

var _ IPhotoService = (*PhotoService)(nil)

func NewPhotoService(journal *JournalService, store PhotoStore, log *zap.Logger) *PhotoService {
	return &PhotoService{journal: journal, store: store, log: log}
}

// Upload stores a photo and links it to the entry. The declared content type
// must agree with the sniffed one.
func (s *PhotoService) Upload(ctx context.Context, userID, entryID uuid.UUID, data []byte, contentType string) (*models.JournalEntry, error) {
	if len(data) > MaxPhotoSize {
		return nil, ErrPhotoTooLarge
	}
	contentType = normalizeContentType(contentType)
	ext, ok := photoExtensions[contentType]
	if !ok || len(data) == 0 || normalizeContentType(http.DetectContentType(data)) != contentType {
		return nil, ErrUnsupportedPhoto
	}

	// Check ownership before spending an upload.
	if _, err := s.journal.Get(ctx, userID, entryID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("journal/%s/%s/%s.%s", userID, entryID, uuid.New(), ext)
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	entry, err := s.journal.AttachPhoto(ctx, userID, entryID, url)
	if err != nil {
		return nil, err
	}
	s.log.Info("Journal photo uploaded",
		zap.String("user_id", userID.String()),
		zap.String("entry_id", entryID.String()),
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return entry, nil
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

package store

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

// minioUploadStorage keeps uploads as objects <formId>/<generated name><ext>
// in one bucket. Path of a stored file is its object key.
type minioUploadStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	ids     utils.IDGenerator
}

// NewMinioUploadStorage connects to an S3 compatible object store and
// creates the bucket when it does not exist yet.
func NewMinioUploadStorage(ctx context.Context, cfg config.Uploads, ids utils.IDGenerator, log *logger.Logger) (UploadStorage, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioUploadStorage").Msg("failed to create minio client")
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		log.Err(err).Str("func", "NewMinioUploadStorage").Str("bucket", cfg.Minio.Bucket).Msg("failed to check bucket")
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Minio.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Err(err).Str("func", "NewMinioUploadStorage").Str("bucket", cfg.Minio.Bucket).Msg("failed to create bucket")
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Minio.Bucket, err)
		}
	}
	log.Info().Str("func", "NewMinioUploadStorage").Str("bucket", cfg.Minio.Bucket).Msg("object storage ready")

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = client.EndpointURL().String() + "/" + cfg.Minio.Bucket
	}

	return &minioUploadStorage{
		client:  client,
		bucket:  cfg.Minio.Bucket,
		baseURL: baseURL,
		ids:     ids,
	}, nil
}

func (m *minioUploadStorage) Save(ctx context.Context, upload UploadRequest) (models.UploadedFile, error) {
	if err := validateDocumentID(upload.FormID); err != nil {
		return models.UploadedFile{}, err
	}

	filename := uploadFileName(m.ids, upload.OriginalName)
	key := path.Join(upload.FormID, filename)

	info, err := m.client.PutObject(ctx, m.bucket, key, upload.Body, upload.Size, minio.PutObjectOptions{
		ContentType: upload.MimeType,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "minioUploadStorage.Save").
			Str("bucket", m.bucket).
			Str("key", key).
			Msg("failed to put object")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	return models.UploadedFile{
		FieldName:    upload.FieldName,
		Filename:     filename,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		Size:         info.Size,
		Path:         key,
		URL:          m.baseURL + "/" + key,
	}, nil
}

func (m *minioUploadStorage) Remove(ctx context.Context, formID, key string) error {
	if !ownsObjectKey(formID, key) {
		return fmt.Errorf("%w: %s", ErrInvalidUploadPath, key)
	}

	// removing a missing object succeeds in S3
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "minioUploadStorage.Remove").
			Str("bucket", m.bucket).
			Str("key", key).
			Msg("failed to remove object")
		return fmt.Errorf("%w: %w", ErrRemovingFile, err)
	}

	return nil
}

// ownsObjectKey reports whether key is a file directly under formID, the
// layout Save writes.
func ownsObjectKey(formID, key string) bool {
	if validateDocumentID(formID) != nil || strings.Contains(key, "..") {
		return false
	}
	name, ok := strings.CutPrefix(key, formID+"/")
	return ok && name != "" && !strings.Contains(name, "/")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package blob

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// KeyPrefix is the folder every product image lives under.
const KeyPrefix = "products/"

var contentTypeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/avif": "avif",
}

type s3ImageStore struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
	expiry        time.Duration
	ids           *utils.UUIDGenerator
	now           func() time.Time
	logger        *logger.Logger
}

// NewImageStore returns the S3-backed store described by cfg, or a store
// that rejects every call when cfg.Bucket is empty.
func NewImageStore(ctx context.Context, cfg config.Blob, log *logger.Logger) (ImageStore, error) {
	if cfg.Bucket == "" {
		log.Warn().Str("func", "NewImageStore").Msg("blob bucket is empty, image uploads disabled")
		return disabledStore{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBaseURL == "" {
		publicBaseURL = defaultPublicBaseURL(cfg)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	log.Info().Str("func", "NewImageStore").Str("bucket", cfg.Bucket).Msg("s3 image store ready")

	return &s3ImageStore{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
		expiry:        expiry,
		ids:           utils.NewUUIDGenerator(),
		now:           time.Now,
		logger:        log,
	}, nil
}

func defaultPublicBaseURL(cfg config.Blob) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// PresignUpload signs a PUT for a new key under products/yyyy/mm/dd/.
func (s *s3ImageStore) PresignUpload(ctx context.Context, contentType string) (models.PresignedUpload, error) {
	ext, ok := contentTypeExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return models.PresignedUpload{}, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}

	key := s.newKey(ext)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStore.PresignUpload").Msg("error presigning upload")
		return models.PresignedUpload{}, fmt.Errorf("error presigning upload: %w", err)
	}

	return models.PresignedUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.publicBaseURL + "/" + (&url.URL{Path: key}).EscapedPath(),
	}, nil
}

func (s *s3ImageStore) newKey(ext string) string {
	now := s.now().UTC()
	return fmt.Sprintf("%s%04d/%02d/%02d/%s.%s", KeyPrefix, now.Year(), now.Month(), now.Day(), s.ids.Generate(), ext)
}

// DeleteImage removes key from the bucket.
func (s *s3ImageStore) DeleteImage(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if !strings.HasPrefix(key, KeyPrefix) {
		return fmt.Errorf("%w: %q", ErrForeignKey, key)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStore.DeleteImage").Str("key", key).Msg("error deleting image")
		return fmt.Errorf("error deleting image: %w", err)
	}

	return nil
}

// disabledStore is used when no bucket is configured.
type disabledStore struct{}

func (disabledStore) PresignUpload(context.Context, string) (models.PresignedUpload, error) {
	return models.PresignedUpload{}, ErrStoreDisabled
}

func (disabledStore) DeleteImage(_ context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return ErrStoreDisabled
}

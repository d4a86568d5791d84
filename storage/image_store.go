// Package storage keeps discussion images in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/config"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// IsAllowedImageType reports whether contentType may be stored as a
// discussion image.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[strings.ToLower(contentType)]
}

type ImageStore interface {
	// Save writes the image and returns its public URL.
	Save(ctx context.Context, ownerID uint, fileName, contentType string, body io.Reader) (string, error)
	// Delete removes the object behind a URL returned by Save.
	Delete(ctx context.Context, url string) error
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3ImageStore struct {
	client    objectAPI
	bucket    string
	publicURL string
}

func NewS3ImageStore(cfg config.StorageConfig) *S3ImageStore {
	opts := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return newS3ImageStore(s3.New(opts), cfg.Bucket, publicURL)
}

func newS3ImageStore(client objectAPI, bucket, publicURL string) *S3ImageStore {
	return &S3ImageStore{client: client, bucket: bucket, publicURL: publicURL}
}

func (s *S3ImageStore) Save(ctx context.Context, ownerID uint, fileName, contentType string, body io.Reader) (string, error) {
	if !IsAllowedImageType(contentType) {
		return "", ErrUnsupportedImage
	}
	key := imageKey(ownerID, fileName)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == url {
		return errors.Errorf("image url %q is not served by bucket %s", url, s.bucket)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "delete object %s", key)
}

func imageKey(ownerID uint, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("discussions/%d/%d_%s%s", ownerID, time.Now().Unix(), uuid.New().String(), ext)
}

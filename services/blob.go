package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/config"
)

// BlobStore uploads image files to the configured S3 bucket and hands back
// public URLs. PutObjectFunc is swappable so tests can intercept the upload
// without talking to S3.
type BlobStore struct {
	Bucket        string
	PublicBaseURL string
	PutObjectFunc func(ctx context.Context, key, contentType string, body []byte) error
}

// NewBlobStore builds a store from S3_BUCKET, S3_REGION and
// S3_PUBLIC_BASE_URL, using the default AWS credential chain.
func NewBlobStore(cfg map[string]string) (*BlobStore, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	region := config.GetString(cfg, "S3_REGION", "us-east-1")
	publicBaseURL := config.GetString(cfg, "S3_PUBLIC_BASE_URL",
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)

	store := &BlobStore{
		Bucket:        bucket,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
	store.PutObjectFunc = func(ctx context.Context, key, contentType string, body []byte) error {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(store.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentType),
		})
		return err
	}
	return store, nil
}

// UploadImage stores the file under uploads/<uuid><ext> and returns its
// public URL. Single attempt; a failed upload surfaces as an error with no
// retry.
func (s *BlobStore) UploadImage(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	key := "uploads/" + uuid.New().String() + strings.ToLower(path.Ext(filename))
	if err := s.PutObjectFunc(ctx, key, contentType, body); err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return s.PublicBaseURL + "/" + key, nil
}

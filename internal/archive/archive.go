// Package archive stores uploaded resumes in S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"hireup/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Archiver stores the original bytes of an analyzed upload.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) error
}

// New returns an S3 archiver, or a no-op archiver when archiving is
// disabled.
func New(ctx context.Context, cfg config.ArchiveConfig) (Archiver, error) {
	if !cfg.Enabled {
		return NopArchiver{}, nil
	}
	return NewS3Archiver(ctx, cfg)
}

// ObjectKey returns resumes/{userID}/{scanID}/{fileName}. Directory parts of
// the file name are dropped.
func ObjectKey(userID, scanID uuid.UUID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s/%s", userID, scanID, name)
}

// NopArchiver discards uploads.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, string, []byte, string) error { return nil }

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes uploads to a single bucket.
type S3Archiver struct {
	client objectPutter
	bucket string
}

// NewS3Archiver builds an S3 client from the default AWS credential chain,
// or from static keys when both are configured. A custom endpoint switches
// to path-style addressing for S3-compatible stores.
func NewS3Archiver(ctx context.Context, cfg config.ArchiveConfig) (*S3Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archiver{client: client, bucket: cfg.Bucket}, nil
}

// Archive uploads data under key.
func (a *S3Archiver) Archive(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

package core

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// S3API is the subset of the S3 client used for uploads.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader handles uploading generated files to S3.
type S3Uploader struct {
	Client S3API
	Bucket string
	Prefix string
}

// NewS3Uploader creates a new uploader.
func NewS3Uploader(cfg aws.Config, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: prefix,
	}
}

// Key returns the object key for a file name.
func (u *S3Uploader) Key(name string) string {
	return strings.TrimPrefix(path.Join(u.Prefix, name), "/")
}

// UploadFiles uploads every file in order, stopping at the first failure.
func (u *S3Uploader) UploadFiles(ctx context.Context, files []FileData) error {
	for _, file := range files {
		if err := u.UploadFile(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

// UploadFile uploads a single generated file to S3.
func (u *S3Uploader) UploadFile(ctx context.Context, file FileData) error {
	key := u.Key(file.Name)
	slog.Info("Uploading to S3", "file", file.Name, "bucket", u.Bucket, "key", key, "size", file.Size)

	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentLength: aws.Int64(int64(len(file.Data))),
		ContentType:   aws.String(xlsxContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3: %w", file.Name, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader writes uploads to a bucket under a dated key.
type S3Uploader struct {
	Client *s3.Client
	Bucket string
	Prefix string
	Region string
	now    func() time.Time
}

func NewS3Uploader(cfg aws.Config, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: prefix,
		Region: cfg.Region,
		now:    time.Now,
	}
}

func (u *S3Uploader) Enabled() bool { return u != nil && u.Client != nil && u.Bucket != "" }

func (u *S3Uploader) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if !u.Enabled() {
		return nil, fmt.Errorf("s3 uploader not configured")
	}
	key := ObjectKey(u.Prefix, in.Filename, u.now())

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.Bucket),
		Key:           aws.String(key),
		Body:          in.Body,
		ContentLength: aws.Int64(in.Size),
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}
	if in.Compress {
		input.Metadata = map[string]string{"compression-level": CompressionLevel}
	}
	if _, err := u.Client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", key, err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, key),
		Key:      key,
		Provider: "s3",
	}, nil
}

// ObjectKey builds prefix/YYYY/MM/DD/<uuid>-<name>.
func ObjectKey(prefix, filename string, at time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	return path.Join(strings.Trim(prefix, "/"), at.UTC().Format("2006/01/02"), uuid.NewString()+"-"+name)
}

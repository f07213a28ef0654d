package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	MB = 1 << 20

	DefaultMaxUploadSize     = 20 * MB
	DefaultCompressThreshold = 2 * MB
	CompressionLevel         = "50"

	// multipartOverhead is the slack allowed over MaxSize for form framing
	multipartOverhead = 64 << 10
)

var (
	ErrNoFile   = errors.New("No file provided")
	ErrTooLarge = errors.New("File size exceeds the upload limit")
)

// SizeError reports a file over the configured limit. It matches ErrTooLarge.
type SizeError struct {
	Max int64
}

func (e *SizeError) Error() string {
	return "File size exceeds " + formatSize(e.Max)
}

func (e *SizeError) Is(target error) bool {
	return target == ErrTooLarge
}

func formatSize(n int64) string {
	switch {
	case n%MB == 0:
		return fmt.Sprintf("%dMB", n/MB)
	case n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}

// UploadInput describes one file received from a client
type UploadInput struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
	// Compress asks the backend to recompress an image
	Compress bool
}

// UploadResult is what the upload endpoint returns to the client
type UploadResult struct {
	URL      string         `json:"url,omitempty"`
	Key      string         `json:"key,omitempty"`
	Provider string         `json:"provider"`
	Extra    map[string]any `json:"-"`
}

// Uploader stores a file and reports where it went
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
}

// Policy holds the size limits applied before any provider is called
type Policy struct {
	MaxSize           int64
	CompressThreshold int64
}

func DefaultPolicy() Policy {
	return Policy{MaxSize: DefaultMaxUploadSize, CompressThreshold: DefaultCompressThreshold}
}

// Limit is the effective maximum file size
func (p Policy) Limit() int64 {
	if p.MaxSize <= 0 {
		return DefaultMaxUploadSize
	}
	return p.MaxSize
}

// BodyLimit caps a whole multipart request carrying one file
func (p Policy) BodyLimit() int64 {
	return p.Limit() + multipartOverhead
}

// Prepare validates in and decides whether compression applies.
func (p Policy) Prepare(in *UploadInput) error {
	if in == nil || in.Body == nil || in.Filename == "" {
		return ErrNoFile
	}
	if in.Size > p.Limit() {
		return &SizeError{Max: p.Limit()}
	}
	in.Compress = ShouldCompress(in.Filename, in.Size, p.CompressThreshold)
	return nil
}

// ShouldCompress is true for jpg, jpeg and png files above threshold bytes.
func ShouldCompress(filename string, size, threshold int64) bool {
	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}
	if size <= threshold {
		return false
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

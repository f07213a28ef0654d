package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/storage"
)

type stubUploader struct {
	got storage.UploadInput
	err error
}

func (s *stubUploader) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	s.got = in
	if s.err != nil {
		return nil, s.err
	}
	return &storage.UploadResult{URL: "https://cdn.example/" + in.Filename, Provider: "stub"}, nil
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards with compression decided", func(t *testing.T) {
		up := &stubUploader{}
		svc := NewUploadService(up, storage.DefaultPolicy())
		res, err := svc.Upload(ctx, &storage.UploadInput{Filename: "card.png", Size: 3 * storage.MB, Body: strings.NewReader("x")})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/card.png", res.URL)
		assert.True(t, up.got.Compress)
	})

	t.Run("policy errors are bad requests", func(t *testing.T) {
		svc := NewUploadService(&stubUploader{}, storage.DefaultPolicy())
		_, err := svc.Upload(ctx, &storage.UploadInput{Filename: "a.pdf", Size: 21 * storage.MB, Body: strings.NewReader("")})
		assert.True(t, apperror.IsInvalidArgument(err))
		assert.Equal(t, "File size exceeds 20MB", err.Error())

		_, err = svc.Upload(ctx, &storage.UploadInput{})
		assert.Equal(t, "No file provided", err.Error())
	})

	t.Run("provider failure is internal", func(t *testing.T) {
		svc := NewUploadService(&stubUploader{err: errors.New("503 from upstream")}, storage.DefaultPolicy())
		_, err := svc.Upload(ctx, &storage.UploadInput{Filename: "a.pdf", Size: 10, Body: strings.NewReader("x")})
		assert.ErrorIs(t, err, apperror.ErrInternalServer)
	})
}

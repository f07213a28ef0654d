package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/logger"
	"github.com/sangkips/xylem-api/pkg/storage"
)

// UploadService proxies uploaded files to the configured storage backend
type UploadService struct {
	uploader storage.Uploader
	policy   storage.Policy
	log      zerolog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(uploader storage.Uploader, policy storage.Policy) *UploadService {
	return &UploadService{
		uploader: uploader,
		policy:   policy,
		log:      logger.ForPackage("upload"),
	}
}

// BodyLimit is the largest request body the upload endpoint should read
func (s *UploadService) BodyLimit() int64 {
	return s.policy.BodyLimit()
}

// TooLarge is the error for a body cut off at BodyLimit
func (s *UploadService) TooLarge() error {
	return apperror.NewBadRequestError((&storage.SizeError{Max: s.policy.Limit()}).Error())
}

// Upload enforces the size policy and forwards the file. Provider failures
// are logged and reported as internal errors.
func (s *UploadService) Upload(ctx context.Context, in *storage.UploadInput) (*storage.UploadResult, error) {
	if err := s.policy.Prepare(in); err != nil {
		if errors.Is(err, storage.ErrNoFile) || errors.Is(err, storage.ErrTooLarge) {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		return nil, err
	}

	res, err := s.uploader.Upload(ctx, *in)
	if err != nil {
		s.log.Error().Err(err).Str("filename", in.Filename).Int64("size", in.Size).Msg("upload failed")
		return nil, apperror.ErrInternalServer
	}
	return res, nil
}

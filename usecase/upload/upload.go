package upload

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/usecase"
)

// UseCase pushes a file to the image host and returns its public URL. The
// upload is a blocking prerequisite for the task write that references it;
// a failure here surfaces to the caller instead of being swallowed so the
// form can block submission.
type UseCase struct {
	uploader usecase.Uploader
	maxBytes int
	logger   *zap.Logger
}

func New(uploader usecase.Uploader, maxBytes int, logger *zap.Logger) *UseCase {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		uploader: uploader,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

func (uc *UseCase) UploadAttachment(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.NewError(domain.ErrCodeInvalid, "empty file")
	}
	if len(data) > uc.maxBytes {
		return "", domain.NewError(domain.ErrCodeInvalid, "file too large")
	}

	url, err := uc.uploader.Upload(ctx, filename, data)
	if err != nil {
		uc.logger.Error("attachment upload failed", zap.String("filename", filename), zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "attachment upload failed", err)
	}

	uc.logger.Info("attachment uploaded", zap.String("filename", filename), zap.Int("bytes", len(data)))
	return url, nil
}

package handler

import (
	"io"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/pkg/httpcontext"
	uploadUC "github.com/taskflow/backend/usecase/upload"
)

type UploadHandler struct {
	baseHandler
	uc *uploadUC.UseCase
}

func NewUploadHandler(uc *uploadUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Upload one attachment, returning its hosted URL
// @Tags uploads
// @Accept multipart/form-data
// @Router /api/v1/uploads [post]
func (h *UploadHandler) Upload(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing file", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	url, err := h.uc.UploadAttachment(stdCtx, fileHeader.Filename, data)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.UploadResponse{URL: url})
}

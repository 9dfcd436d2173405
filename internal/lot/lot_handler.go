package lot

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"go-commission/internal/access"
	loterrors "go-commission/internal/lot/errors"
	"go-commission/internal/middleware"
	"go-commission/internal/shared/apperror"
	"go-commission/internal/shared/response"
	"go-commission/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	rdb    *redis.Client
	logger *zap.Logger
}

// NewHandler builds the lot handler. rdb may be nil, in which case payment
// responses are not cached for Idempotency-Key replays.
func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("lot.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lot.handler")
	}
	return &Handler{svc: service, rdb: rdb, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("lot request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.writeError(c, apperror.MapValidationError(err))
}

func (h *Handler) actor(c *gin.Context) (access.Actor, bool) {
	actor, ok := access.ActorFromGin(c)
	if !ok {
		h.writeError(c, apperror.ErrUnauthorized)
	}
	return actor, ok
}

func (h *Handler) Preview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CloseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Preview(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Close(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Close(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	status := http.StatusOK
	if len(resp.Created) > 0 {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ListLotsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.GetAll(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, pageSize := response.PageParams(c, 50)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// RecordPayment reads a multipart form with "amount", "description" and an
// optional "proof" file.
func (h *Handler) RecordPayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	var proof *storage.Upload
	if header, err := c.FormFile("proof"); err == nil {
		uploads, closeAll, err := storage.OpenUploads([]*multipart.FileHeader{header})
		if err != nil {
			h.writeError(c, err)
			return
		}
		defer closeAll()
		proof = &uploads[0]
	}

	resp, err := h.svc.RecordPayment(c.Request.Context(), actor, c.Param("id"), req, proof)
	if err != nil {
		h.writeError(c, err)
		return
	}
	middleware.SaveIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UploadAttachment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.writeError(c, loterrors.ErrAttachmentRequired)
		return
	}
	uploads, closeAll, err := storage.OpenUploads([]*multipart.FileHeader{header})
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer closeAll()

	resp, err := h.svc.UploadAttachment(c.Request.Context(), actor, c.Param("id"), c.PostForm("description"), uploads[0])
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Export(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ListLotsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeBindError(c, err)
		return
	}

	file, err := h.svc.Export(c.Request.Context(), actor, filter, c.DefaultQuery("format", "csv"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) Dashboard(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), actor)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

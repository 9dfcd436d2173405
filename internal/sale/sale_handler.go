package sale

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"go-commission/internal/access"
	"go-commission/internal/customer"
	saleerrors "go-commission/internal/sale/errors"
	"go-commission/internal/shared/apperror"
	"go-commission/internal/shared/response"
	"go-commission/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("sale.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sale.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("sale request failed", zap.String("path", c.FullPath()), zap.Error(err))
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

// Create accepts a JSON body, or a multipart form whose "data" field holds
// the JSON and whose "receipts" files are payment receipts.
func (h *Handler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateSaleRequest
	var receipts []storage.Upload
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if err := json.Unmarshal([]byte(c.PostForm("data")), &req); err != nil {
			h.writeError(c, apperror.InvalidField("data"))
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			h.writeBindError(c, err)
			return
		}

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil {
			files = form.File["receipts"]
		}
		uploads, closeAll, err := storage.OpenUploads(files)
		if err != nil {
			h.writeError(c, err)
			return
		}
		defer closeAll()
		receipts = uploads
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), actor, req, receipts)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ListSalesFilter
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

func (h *Handler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req customer.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.UpdateCustomer(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadAttachment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.writeError(c, saleerrors.ErrAttachmentRequired)
		return
	}
	uploads, closeAll, err := storage.OpenUploads([]*multipart.FileHeader{header})
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer closeAll()

	resp, err := h.svc.UploadAttachment(c.Request.Context(), actor, c.Param("id"), c.PostForm("kind"), uploads[0])
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteAttachment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAttachment(c.Request.Context(), actor, c.Param("id"), c.Param("attachmentId")); err != nil {
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
	var filter ListSalesFilter
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

func (h *Handler) Summary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ListSalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Summary(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CommissionSummary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ListSalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.CommissionSummary(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

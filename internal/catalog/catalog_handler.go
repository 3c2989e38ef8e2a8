package catalog

import (
	"net/http"

	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/listing"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler[T Record[T]] struct {
	resource Resource[T]
	service  Service[T]
	logger   *zap.Logger
}

func NewHandler[T Record[T]](resource Resource[T], service Service[T], logger ...*zap.Logger) *Handler[T] {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Handler[T]{resource: resource, service: service, logger: l.Named("catalog.handler." + resource.Name)}
}

func (h *Handler[T]) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	log := h.logger.Warn
	if httpErr.Status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("catalog request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler[T]) List(c *gin.Context) {
	q := listing.ParseQuery(c.Request.URL.Query(), h.resource.FilterKeys()...)

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(page.Total), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Items, &meta)
}

func (h *Handler[T]) GetByID(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, nil)
}

func (h *Handler[T]) Create(c *gin.Context) {
	form := NewForm(h.resource, h.service)
	form.OpenCreate()
	if err := c.ShouldBindJSON(form.Draft()); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	// An id in the body must not turn a create into an update.
	d := form.Draft()
	*d = (*d).WithID("")

	saved, err := form.Submit(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, saved, nil)
}

func (h *Handler[T]) Update(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	form := NewForm(h.resource, h.service)
	form.OpenEdit(rec.WithID(c.Param("id")))

	saved, err := form.Submit(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, saved, nil)
}

func (h *Handler[T]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Deleted.", nil)
}

func (h *Handler[T]) Action(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := h.service.Action(c.Request.Context(), c.Param("id"), action)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, rec, nil)
	}
}

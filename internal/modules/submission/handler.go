package submission

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/toolsite/core/internal/middleware"
	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/submissions")
	{
		g.POST("", h.submit)

		admin := g.Group("", authMW)
		{
			admin.GET("", h.list)
			admin.GET("/:id", h.get)
			admin.PATCH("/:id/approve", h.approve)
			admin.PATCH("/:id/reject", h.reject)
			admin.DELETE("/:id", h.delete)
		}
	}
}

func (h *Handler) submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and url are required")
		return
	}
	sub, err := h.service.Submit(&req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, sub)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	var status *models.SubmissionStatus
	if s := c.Query("status"); s != "" {
		v := models.SubmissionStatus(s)
		status = &v
	}
	subs, pag, err := h.service.List(q, status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, pag)
}

func (h *Handler) get(c *gin.Context) {
	sub, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) approve(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = ReviewRequest{}
	}
	sub, err := h.service.Approve(c.Param("id"), middleware.CurrentUserID(c), &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) reject(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = ReviewRequest{}
	}
	sub, err := h.service.Reject(c.Param("id"), middleware.CurrentUserID(c), &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

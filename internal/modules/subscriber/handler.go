package subscriber

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
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
	g := rg.Group("/subscribers")
	{
		g.POST("/subscribe", h.subscribe)
		g.POST("/unsubscribe", h.unsubscribe)

		admin := g.Group("", authMW)
		{
			admin.GET("", h.list)
			admin.DELETE("/:id", h.delete)
		}
	}
}

type subscribeRequest struct {
	Email string   `json:"email" binding:"required"`
	Tags  []string `json:"tags"`
}

func (h *Handler) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}
	sub, err := h.service.Subscribe(req.Email, req.Tags)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, sub)
}

func (h *Handler) unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}
	if err := h.service.Unsubscribe(req.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	activeOnly := false
	if v := c.Query("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "active must be a boolean")
			return
		}
		activeOnly = parsed
	}
	subs, pag, err := h.service.List(q, activeOnly)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, pag)
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

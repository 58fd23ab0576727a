package tag

import (
	"errors"

	"github.com/gin-gonic/gin"
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
	g := rg.Group("/tags")
	{
		g.GET("", h.list)

		admin := g.Group("", authMW)
		{
			admin.POST("", h.create)
			admin.DELETE("/:id", h.delete)
		}
	}
}

func (h *Handler) list(c *gin.Context) {
	tags, err := h.service.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	tag, err := h.service.Create(&req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, tag)
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

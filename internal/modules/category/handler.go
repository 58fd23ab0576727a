package category

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
	g := rg.Group("/categories")
	{
		g.GET("", h.list)
		g.GET("/:id", h.get)

		admin := g.Group("", authMW)
		{
			admin.POST("", h.create)
			admin.PATCH("/:id", h.update)
			admin.DELETE("/:id", h.delete)
		}
	}
}

func (h *Handler) list(c *gin.Context) {
	categories, err := h.service.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	cat, err := h.service.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		// fall back to slug lookup so public pages can use pretty URLs
		cat, err = h.service.GetBySlug(id)
		if err != nil {
			response.InternalError(c, err)
			return
		}
	}
	if cat == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	cat, err := h.service.Create(&req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cat, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, cat)
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

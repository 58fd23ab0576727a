package ad

import (
	"errors"
	"time"

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
	g := rg.Group("/ads")
	{
		g.GET("", h.active)
		g.POST("/:id/click", h.click)

		admin := g.Group("", authMW)
		{
			admin.GET("/:id", h.get)
			admin.GET("/:id/stats", h.stats)
			admin.POST("", h.create)
			admin.PATCH("/:id", h.update)
			admin.DELETE("/:id", h.delete)
		}
	}

	rg.GET("/admin/ads", authMW, h.list)
}

func (h *Handler) active(c *gin.Context) {
	position := c.Query("position")
	if position == "" {
		response.BadRequest(c, "position is required")
		return
	}
	ads, err := h.service.ActiveForPosition(position, time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, ads)
}

func (h *Handler) click(c *gin.Context) {
	err := h.service.RecordClick(
		c.Param("id"),
		c.ClientIP(),
		c.Request.UserAgent(),
		c.Request.Referer(),
	)
	if err != nil {
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
	ads, pag, err := h.service.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, ads, pag)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.service.StatsFor(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if stats == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) get(c *gin.Context) {
	ad, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ad == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, ad)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title, content and position are required")
		return
	}
	ad, err := h.service.Create(&req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, ad)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	ad, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ad == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, ad)
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

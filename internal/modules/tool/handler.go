package tool

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
	g := rg.Group("/tools")
	{
		g.GET("", h.list)
		g.GET("/:id", h.get)

		admin := g.Group("", authMW)
		{
			admin.POST("", h.create)
			admin.PATCH("/:id", h.update)
			admin.DELETE("/:id", h.delete)
			admin.PATCH("/:id/approve", h.approve)
			admin.PATCH("/:id/feature", h.feature)
		}
	}

	rg.GET("/admin/tools", authMW, h.adminList)
}

// list serves the public catalog: approved tools only.
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	approved := true
	filter := ListFilter{
		Approved:     &approved,
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("q"),
	}
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "featured must be a boolean")
			return
		}
		filter.Featured = &featured
	}

	tools, pag, err := h.service.List(q, filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]ToolResponse, 0, len(tools))
	for i := range tools {
		out = append(out, toResponse(&tools[i]))
	}
	response.Paged(c, out, pag)
}

// adminList serves the console view with no approval constraint.
func (h *Handler) adminList(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := ListFilter{
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("q"),
	}
	if v := c.Query("approved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "approved must be a boolean")
			return
		}
		filter.Approved = &approved
	}

	tools, pag, err := h.service.List(q, filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]ToolResponse, 0, len(tools))
	for i := range tools {
		out = append(out, toResponse(&tools[i]))
	}
	response.Paged(c, out, pag)
}

func (h *Handler) get(c *gin.Context) {
	tool, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if tool == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(tool))
}

func (h *Handler) create(c *gin.Context) {
	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and url are required")
		return
	}
	tool, err := h.service.Create(&req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(tool))
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	tool, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if tool == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(tool))
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

type flagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

func (h *Handler) approve(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "value is required")
		return
	}
	tool, err := h.service.SetApproved(c.Param("id"), *req.Value)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if tool == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(tool))
}

func (h *Handler) feature(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "value is required")
		return
	}
	tool, err := h.service.SetFeatured(c.Param("id"), *req.Value)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if tool == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(tool))
}

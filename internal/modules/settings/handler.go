package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/toolsite/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/settings")
	{
		g.GET("/public", h.public)

		admin := g.Group("", authMW)
		{
			admin.GET("", h.all)
			admin.GET("/:key", h.get)
			admin.PUT("/:key", h.set)
			admin.DELETE("/:key", h.delete)
		}
	}
}

func (h *Handler) public(c *gin.Context) {
	values, err := h.service.Public()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, values)
}

func (h *Handler) all(c *gin.Context) {
	values, err := h.service.All()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, values)
}

func (h *Handler) get(c *gin.Context) {
	value, err := h.service.Get(c.Param("key"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if value == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"key": c.Param("key"), "value": value})
}

type setRequest struct {
	Value interface{} `json:"value"`
}

func (h *Handler) set(c *gin.Context) {
	var req setRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.service.Set(c.Param("key"), req.Value); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"key": c.Param("key"), "value": req.Value})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("key")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

package webhook

import (
	"errors"

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
	g := rg.Group("/webhooks", authMW)
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.get)
		g.PUT("/:id", h.update)
		g.PATCH("/:id", h.update)
		g.DELETE("/:id", h.delete)

		g.POST("/dispatch", h.dispatch)

		g.GET("/events", h.listEvents)
		g.POST("/redispatch/:id", h.redispatch)
		g.DELETE("/clear/:id", h.clearEvents)
	}
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	hooks, pag, err := h.service.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]WebhookResponse, 0, len(hooks))
	for i := range hooks {
		out = append(out, toResponse(&hooks[i]))
	}
	response.Paged(c, out, pag)
}

func (h *Handler) get(c *gin.Context) {
	hook, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if hook == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(hook))
}

func (h *Handler) create(c *gin.Context) {
	var req CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and url are required")
		return
	}
	hook, err := h.service.Create(&req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(hook))
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	hook, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if hook == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(hook))
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

// dispatch triggers all subscribed hooks for an event and reports per-hook
// delivery outcomes.
func (h *Handler) dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "event is required")
		return
	}
	results, err := h.service.Dispatch(c.Request.Context(), req.Event, req.Data)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(200, gin.H{
		"event":              req.Event,
		"webhooks_triggered": len(results),
		"results":            results,
	})
}

func (h *Handler) listEvents(c *gin.Context) {
	q := pagination.FromContext(c)
	events, pag, err := h.service.ListEvents(q, c.Query("hook_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, events, pag)
}

func (h *Handler) redispatch(c *gin.Context) {
	result, err := h.service.Redispatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) clearEvents(c *gin.Context) {
	if err := h.service.ClearEventsByHookID(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

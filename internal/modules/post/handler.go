package post

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
	g := rg.Group("/posts")
	{
		g.GET("", h.list)
		g.GET("/:slug", h.getBySlug)

		admin := g.Group("", authMW)
		{
			admin.POST("", h.create)
			admin.PATCH("/:slug", h.update)
			admin.DELETE("/:slug", h.delete)
			admin.PATCH("/:slug/publish", h.publish)
			admin.PATCH("/:slug/unpublish", h.unpublish)
		}
	}

	rg.GET("/admin/posts", authMW, h.adminList)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	posts, pag, err := h.service.List(q, true)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, pag)
}

func (h *Handler) adminList(c *gin.Context) {
	q := pagination.FromContext(c)
	posts, pag, err := h.service.List(q, false)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, pag)
}

// getBySlug serves a post by slug, falling back to id for console links.
// Drafts are only visible to authenticated users.
func (h *Handler) getBySlug(c *gin.Context) {
	key := c.Param("slug")
	post, err := h.service.GetBySlug(key)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		post, err = h.service.GetByID(key)
		if err != nil {
			response.InternalError(c, err)
			return
		}
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	if post.Status != models.PostPublished && !middleware.IsAuthenticated(c) {
		response.NotFound(c)
		return
	}

	rendered, err := h.service.Render(post)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, PostResponse{PostModel: *post, HTML: rendered})
}

func (h *Handler) create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title is required")
		return
	}
	post, err := h.service.Create(&req, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, post)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	post, err := h.service.Update(h.resolveID(c), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, post)
}

func (h *Handler) publish(c *gin.Context) {
	post, err := h.service.Publish(h.resolveID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, post)
}

func (h *Handler) unpublish(c *gin.Context) {
	post, err := h.service.Unpublish(h.resolveID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, post)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(h.resolveID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// resolveID maps the :slug path segment to a post id, accepting either form.
func (h *Handler) resolveID(c *gin.Context) string {
	key := c.Param("slug")
	if post, err := h.service.GetBySlug(key); err == nil && post != nil {
		return post.ID
	}
	return key
}

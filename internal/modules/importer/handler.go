package importer

import (
	"github.com/gin-gonic/gin"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
)

// maxImportRows bounds a single import batch.
const maxImportRows = 5000

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tools/import", authMW)
	{
		g.POST("", h.run)
		g.GET("", h.list)
		g.GET("/:id", h.get)
	}
}

type importRequest struct {
	Filename string `json:"filename"`
	Items    []Row  `json:"items" binding:"required"`
}

func (h *Handler) run(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "items is required")
		return
	}
	if len(req.Items) == 0 {
		response.BadRequest(c, "items is empty")
		return
	}
	if len(req.Items) > maxImportRows {
		response.BadRequest(c, "too many items in one import")
		return
	}
	if req.Filename == "" {
		req.Filename = "import.json"
	}

	task, err := h.service.Run(req.Filename, req.Items)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, task)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	tasks, pag, err := h.service.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, tasks, pag)
}

func (h *Handler) get(c *gin.Context) {
	task, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}

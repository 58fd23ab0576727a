package scraper

import (
	"github.com/gin-gonic/gin"
	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/pagination"
	"github.com/toolsite/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/scraper")
	{
		g.POST("/extract", h.extract)

		admin := g.Group("", authMW)
		{
			admin.POST("/scrape", h.scrape)
			admin.GET("/tasks", h.listTasks)
			admin.GET("/tasks/:id", h.getTask)
		}
	}
}

type scrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

// extract fetches a page and returns its metadata without exposing the
// task record. The envelope mirrors what the submission form consumes.
func (h *Handler) extract(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "url is required")
		return
	}

	_, meta, err := h.service.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(200, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "data": meta})
}

// scrape runs a scrape and returns the task id with the stored result.
func (h *Handler) scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "url is required")
		return
	}

	task, _, err := h.service.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		if task != nil {
			c.JSON(200, gin.H{"task_id": task.ID, "error": task.ErrorMessage})
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(200, gin.H{"task_id": task.ID, "result": task.Result})
}

func (h *Handler) listTasks(c *gin.Context) {
	q := pagination.FromContext(c)

	var status *models.ScrapeStatus
	if s := c.Query("status"); s != "" {
		v := models.ScrapeStatus(s)
		status = &v
	}

	tasks, pag, err := h.service.ListTasks(q, status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, tasks, pag)
}

func (h *Handler) getTask(c *gin.Context) {
	task, err := h.service.GetTaskByID(c.Param("id"))
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

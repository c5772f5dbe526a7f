package jobs

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/shared/server/respond"
)

const defaultDocsURL = "https://github.com/sagaeinkik/cv-api"

type Handler struct {
	Svc     *Service
	DocsURL string
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, DocsURL: defaultDocsURL}
}

// RegisterRoutes mounts the cv resource on rg, which is expected to be /api.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Welcome)
	rg.GET("/cv", h.list)
	rg.GET("/cv/:id", h.get)
	rg.POST("/cv", h.create)
	rg.PUT("/cv", h.missingID("You must supply an id to update"))
	rg.PUT("/cv/:id", h.update)
	rg.DELETE("/cv", h.missingID("You must supply an id to delete"))
	rg.DELETE("/cv/:id", h.delete)
}

// Welcome answers with a static greeting pointing at the documentation.
func (h *Handler) Welcome(c *gin.Context) {
	docs := h.DocsURL
	if docs == "" {
		docs = defaultDocsURL
	}
	respond.OK(c, welcomeResponse{
		Message: "Welcome to the CV API. It serves a job history over a single cv table. Documentation is on GitHub: " + docs,
	})
}

func (h *Handler) list(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "No data to show", "")
			return
		}
		respond.Internal(c, err, "Could not read jobs", "")
		return
	}
	respond.OK(c, toRows(list))
}

func (h *Handler) get(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	id := c.Param("id")
	c.Set("jobId", id)
	list, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "No data to show", "")
			return
		}
		respond.Internal(c, err, "Could not read job", "")
		return
	}
	respond.OK(c, toRows(list))
}

func (h *Handler) create(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeMutationError(c, err, "Could not add job")
		return
	}
	id := strconv.FormatInt(job.ID, 10)
	c.Set("jobId", id)
	c.Header("Location", "/api/cv/"+id)
	respond.OK(c, createResponse{Message: "Job added successfully", Job: toEcho(job)})
}

func (h *Handler) update(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	id := c.Param("id")
	c.Set("jobId", id)
	in, ok := bindInput(c)
	if !ok {
		return
	}
	job, affected, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.writeMutationError(c, err, "Could not update job")
		return
	}
	respond.OK(c, updateResponse{
		Message: "Updated job with id: " + id,
		Job:     toEcho(job),
		Result:  MutationResult{AffectedRows: affected},
	})
}

func (h *Handler) delete(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	id := c.Param("id")
	c.Set("jobId", id)
	affected, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeMutationError(c, err, "Could not delete job")
		return
	}
	respond.OK(c, deleteResponse{
		Message: "Deleted job with id: " + id,
		Result:  MutationResult{AffectedRows: affected},
	})
}

func (h *Handler) missingID(details string) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.Error(c, http.StatusBadRequest, "URL query missing", details)
	}
}

func (h *Handler) writeMutationError(c *gin.Context, err error, message string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, verr.Message, verr.Details)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Matching data not found", "There is no post in the database with that ID")
	default:
		respond.Internal(c, err, message, "")
	}
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "Service unavailable", "")
		return false
	}
	return true
}

// bindInput decodes the JSON body. A missing body counts as an empty payload
// so the caller gets the usual missing-field error.
func bindInput(c *gin.Context) (Input, bool) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return Input{}, true
		}
		details := "The request body must be a JSON object"
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			details += ": " + msg
		}
		respond.Error(c, http.StatusBadRequest, "Invalid request body", details)
		return Input{}, false
	}
	return in, true
}

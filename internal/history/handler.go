package history

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/analyze"
	"devboard-backend/internal/shared/server/middleware"
	"devboard-backend/internal/shared/server/respond"
)

// Handler exposes the history endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the history routes on the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/history", h.list)
	api.POST("/history", h.save)
}

type saveRequest struct {
	FileName string           `json:"fileName"`
	Envelope analyze.Envelope `json:"envelope"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		req.FileName = "resume.pdf"
	}

	if err := h.service.Save(c.Request.Context(), middleware.UserIDFromContext(c), req.FileName, req.Envelope); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "history save failed", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"saved": true})
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respond.Error(c, http.StatusBadRequest, "bad_request", "limit must be 1-100", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.service.List(c.Request.Context(), middleware.UserIDFromContext(c), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "history lookup failed", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	respond.OK(c, gin.H{"entries": entries})
}

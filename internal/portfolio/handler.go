package portfolio

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/shared/server/middleware"
	"devboard-backend/internal/shared/server/respond"
)

// Handler exposes the portfolio endpoints. The slug lookup is public.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the portfolio routes on the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/portfolio", h.generate)
	api.GET("/portfolio", h.mine)
	api.GET("/portfolio/:slug", h.bySlug)
}

func (h *Handler) generate(c *gin.Context) {
	p, err := h.service.Generate(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNoHistory) {
			respond.Error(c, http.StatusConflict, "no_history", "save an analysis before generating a portfolio", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "portfolio generation failed", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, p)
}

func (h *Handler) mine(c *gin.Context) {
	p, err := h.service.ByUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no portfolio generated yet", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "portfolio lookup failed", nil)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) bySlug(c *gin.Context) {
	p, err := h.service.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "portfolio not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "portfolio lookup failed", nil)
		return
	}
	respond.OK(c, p)
}

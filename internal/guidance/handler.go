package guidance

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/shared/server/respond"
)

// Handler exposes the AI guidance endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the guidance routes on the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	ai := api.Group("/ai")
	ai.POST("/guidance", h.guidance)
	ai.POST("/predict_role", h.predictRole)
	ai.POST("/chat", h.chat)
}

func (h *Handler) guidance(c *gin.Context) {
	var req GuidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid guidance request", nil)
		return
	}
	if len(req.Skills) == 0 {
		respond.Error(c, http.StatusBadRequest, "bad_request", "skills are required", nil)
		return
	}
	respond.OK(c, h.service.Guidance(c.Request.Context(), req))
}

func (h *Handler) predictRole(c *gin.Context) {
	var req struct {
		Skills []string `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid prediction request", nil)
		return
	}
	if len(req.Skills) == 0 {
		respond.Error(c, http.StatusBadRequest, "bad_request", "skills are required", nil)
		return
	}
	respond.OK(c, h.service.PredictRole(c.Request.Context(), req.Skills))
}

func (h *Handler) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid chat request", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "bad_request", "message is required", nil)
		return
	}
	respond.OK(c, h.service.Chat(c.Request.Context(), req))
}

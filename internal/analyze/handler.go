package analyze

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/extract"
	"devboard-backend/internal/shared/server/middleware"
	"devboard-backend/internal/shared/server/respond"
	"devboard-backend/internal/shared/telemetry"
)

// 10 MiB resume upload cap.
const maxUploadBytes = 10 << 20

// HistorySaver persists a completed envelope when the caller opts in.
type HistorySaver interface {
	Save(ctx context.Context, userID, fileName string, env Envelope) error
}

// Handler exposes the analysis endpoints.
type Handler struct {
	service *Service
	history HistorySaver
}

// NewHandler builds a Handler. history may be nil when persistence is off.
func NewHandler(service *Service, history HistorySaver) *Handler {
	return &Handler{service: service, history: history}
}

// Register mounts the analysis routes on the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/analyze_all", h.analyzeAll)
	api.GET("/github/analyze_github/:handle", h.platformHandler("github"))
	api.GET("/leetcode/analyze_leetcode/:handle", h.platformHandler("leetcode"))
	api.GET("/codechef/analyze_codechef/:handle", h.platformHandler("codechef"))
}

func (h *Handler) analyzeAll(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_document", "resume PDF is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_document", "could not read upload", nil)
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "resume exceeds 10 MiB", nil)
		return
	}

	handles := Handles{
		GitHub:   formOrQuery(c, "github"),
		LeetCode: formOrQuery(c, "leetcode"),
		CodeChef: formOrQuery(c, "codechef"),
	}

	env, err := h.service.AnalyzeAll(c.Request.Context(), data, handles)
	if err != nil {
		if errors.Is(err, extract.ErrInvalidDocument) {
			respond.Error(c, http.StatusBadRequest, "invalid_document", "upload is not a readable PDF with text", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "analysis failed", nil)
		return
	}

	c.Set("platformStatuses", slotStatuses(env.Platforms))

	if h.history != nil && formOrQuery(c, "save") == "true" {
		userID := middleware.UserIDFromContext(c)
		if err := h.history.Save(c.Request.Context(), userID, header.Filename, env); err != nil {
			// Persistence is best effort; the analysis itself succeeded.
			telemetry.Error("analyze.history_save", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}

	respond.OK(c, env)
}

// formOrQuery reads a parameter from the multipart form, falling back to the
// URL query string. A form value always wins.
func formOrQuery(c *gin.Context, key string) string {
	if v := strings.TrimSpace(c.PostForm(key)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query(key))
}

// platformHandler serves a single-platform lookup. Failures come back as a
// 200 with a failed slot, matching the aggregate contract.
func (h *Handler) platformHandler(platform string) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := strings.TrimSpace(c.Param("handle"))
		result := h.service.FetchPlatform(c.Request.Context(), platform, handle)
		c.Set("platformStatuses", map[string]string{platform: result.Status})
		respond.OK(c, result)
	}
}

func slotStatuses(slots PlatformSlots) map[string]string {
	return map[string]string{
		"github":   slots.GitHub.Status,
		"leetcode": slots.LeetCode.Status,
		"codechef": slots.CodeChef.Status,
	}
}

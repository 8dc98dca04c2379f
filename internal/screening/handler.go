package screening

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/shared/server/middleware"
	"devboard-backend/internal/shared/server/respond"
)

// 10 MiB per resume, matching the single-upload cap.
const maxResumeBytes = 10 << 20

// Handler exposes the batch filter endpoints, admin only.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the screening routes on the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(requireAdmin)
	admin.POST("/filter_resumes", h.filter)
	admin.POST("/filter_resumes_stream", h.filterStream)
}

func requireAdmin(c *gin.Context) {
	if middleware.UserRoleFromContext(c) != "admin" {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin role required", nil)
		return
	}
	c.Next()
}

func (h *Handler) filter(c *gin.Context) {
	files, crit, ok := readBatch(c)
	if !ok {
		return
	}
	results := h.service.Filter(c.Request.Context(), files, crit, nil)
	if results == nil {
		results = []Match{}
	}
	respond.OK(c, gin.H{"count": len(results), "results": results})
}

// filterStream emits one SSE progress event per file and a final done event
// carrying the full result set.
func (h *Handler) filterStream(c *gin.Context) {
	files, crit, ok := readBatch(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	results := h.service.Filter(c.Request.Context(), files, crit, func(p Progress) {
		c.SSEvent("progress", p)
		c.Writer.Flush()
	})
	if results == nil {
		results = []Match{}
	}
	c.SSEvent("done", gin.H{"count": len(results), "results": results})
	c.Writer.Flush()
}

func readBatch(c *gin.Context) ([]File, Criteria, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "multipart form with resumes is required", nil)
		return nil, Criteria{}, false
	}
	uploads := form.File["resumes"]
	if len(uploads) == 0 {
		respond.Error(c, http.StatusBadRequest, "bad_request", "at least one resume file is required", nil)
		return nil, Criteria{}, false
	}

	files := make([]File, 0, len(uploads))
	for _, fh := range uploads {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, maxResumeBytes))
		f.Close()
		if err != nil {
			continue
		}
		files = append(files, File{Name: fh.Filename, Data: data})
	}

	crit := Criteria{
		MinCGPA:    floatField(c, "cgpa"),
		MaxCGPA:    floatField(c, "cgpaMax"),
		MinTenth:   floatField(c, "tenth"),
		MaxTenth:   floatField(c, "tenthMax"),
		MinTwelfth: floatField(c, "twelfth"),
		MaxTwelfth: floatField(c, "twelfthMax"),
		MinATS:     floatField(c, "ats"),
		Skills:     splitList(c.PostForm("skills")),
		Language:   strings.TrimSpace(c.PostForm("language")),
		Degree:     strings.TrimSpace(c.PostForm("degree")),
		Interest:   strings.TrimSpace(c.PostForm("interest")),
	}
	return files, crit, true
}

// floatField parses a numeric form field, tolerating a trailing percent sign.
func floatField(c *gin.Context, key string) float64 {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

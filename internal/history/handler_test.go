package history

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func historyTestRouter(s *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "u1")
	})
	api := r.Group("/api/v1")
	NewHandler(s).Register(api)
	return r
}

func TestSaveEndpointThenList(t *testing.T) {
	s := NewService(NewMemoryRepo())
	r := historyTestRouter(s)

	body := `{"fileName":"jane.pdf","envelope":{"resume":{"atsScore":66,"wordCount":420}}}`
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", resp.Code, resp.Body)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"fileName":"jane.pdf"`) {
		t.Errorf("list body = %s", resp.Body)
	}
	if !strings.Contains(resp.Body.String(), `"atsScore":66`) {
		t.Errorf("list body = %s", resp.Body)
	}
}

func TestSaveEndpointRejectsBadBody(t *testing.T) {
	r := historyTestRouter(NewService(NewMemoryRepo()))

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestListLimitValidation(t *testing.T) {
	r := historyTestRouter(NewService(NewMemoryRepo()))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=0", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
}

package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/platforms"
)

type memorySaver struct {
	userID   string
	fileName string
	saved    int
}

func (m *memorySaver) Save(ctx context.Context, userID, fileName string, env Envelope) error {
	m.userID = userID
	m.fileName = fileName
	m.saved++
	return nil
}

func newTestRouter(s *Service, saver HistorySaver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(s, saver).Register(api)
	return r
}

func multipartResume(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte(resumeText))
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()
	return &body, w.FormDataContentType()
}

func TestAnalyzeAllEndpointReturnsEnvelope(t *testing.T) {
	gh := &stubFetcher{platform: "github", profile: map[string]any{"login": "janecand"}}
	r := newTestRouter(newTestService(gh), nil)

	body, contentType := multipartResume(t, map[string]string{"github": "janecand"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze_all", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Platforms.GitHub.Status != platforms.StatusSuccess {
		t.Errorf("github slot = %+v", env.Platforms.GitHub)
	}
	if env.Platforms.LeetCode.Status != platforms.StatusSkipped {
		t.Errorf("leetcode slot = %+v", env.Platforms.LeetCode)
	}
	if env.Resume.WordCount == 0 {
		t.Error("resume report missing")
	}
}

func TestAnalyzeAllEndpointReadsQueryParams(t *testing.T) {
	lc := &stubFetcher{platform: "leetcode", profile: "p"}
	saver := &memorySaver{}
	r := newTestRouter(newTestService(lc), saver)

	body, contentType := multipartResume(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze_all?leetcode=janecand&save=true", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Platforms.LeetCode.Status != platforms.StatusSuccess {
		t.Errorf("leetcode slot = %+v", env.Platforms.LeetCode)
	}
	if lc.calls != 1 || lc.lastHandle != "janecand" {
		t.Errorf("fetcher saw calls=%d handle=%q", lc.calls, lc.lastHandle)
	}
	if saver.saved != 1 {
		t.Errorf("save=true query param ignored, saved = %d", saver.saved)
	}
}

func TestAnalyzeAllEndpointFormWinsOverQuery(t *testing.T) {
	lc := &stubFetcher{platform: "leetcode", profile: "p"}
	r := newTestRouter(newTestService(lc), nil)

	body, contentType := multipartResume(t, map[string]string{"leetcode": "formhandle"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze_all?leetcode=queryhandle", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if lc.lastHandle != "formhandle" {
		t.Errorf("handle = %q, want the form value", lc.lastHandle)
	}
}

func TestAnalyzeAllEndpointMissingFile(t *testing.T) {
	r := newTestRouter(newTestService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze_all", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("invalid_document")) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestAnalyzeAllEndpointSavesOnOptIn(t *testing.T) {
	saver := &memorySaver{}
	r := newTestRouter(newTestService(&stubFetcher{platform: "github", profile: "p"}), saver)

	body, contentType := multipartResume(t, map[string]string{"save": "true"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze_all", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if saver.saved != 1 || saver.fileName != "resume.pdf" {
		t.Errorf("saver = %+v", saver)
	}
}

func TestAnalyzeAllEndpointDoesNotSaveByDefault(t *testing.T) {
	saver := &memorySaver{}
	r := newTestRouter(newTestService(), saver)

	body, contentType := multipartResume(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze_all", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if saver.saved != 0 {
		t.Errorf("saved = %d, want 0 without save=true", saver.saved)
	}
}

func TestPlatformEndpointFailedSlotIs200(t *testing.T) {
	gh := &stubFetcher{platform: "github", err: platforms.ErrProfileNotFound}
	r := newTestRouter(newTestService(gh), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/github/analyze_github/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, failed slots still answer 200", rec.Code)
	}
	var result platforms.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	if result.Status != platforms.StatusFailed || result.Reason != "profile not found" {
		t.Errorf("slot = %+v", result)
	}
}

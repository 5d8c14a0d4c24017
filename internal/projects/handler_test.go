package projects

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newProjectsRouter(t *testing.T, svc *Service, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", false)
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func TestListProjectsEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	r := newProjectsRouter(t, svc, "google:1")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"projects":[]`) {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
}

func TestGetProject(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	id, err := svc.Save(context.Background(), "google:1", "Draft", "orig", "human", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	r := newProjectsRouter(t, svc, "google:1")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"title":"Draft"`) {
		t.Fatalf("expected project in body: %s", resp.Body.String())
	}
}

func TestGetProjectWrongOwner(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	id, err := svc.Save(context.Background(), "google:1", "Draft", "orig", "human", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	r := newProjectsRouter(t, svc, "google:2")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id, nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign project, got %d", resp.Code)
	}
}

func TestDeleteProject(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	id, err := svc.Save(context.Background(), "google:1", "Draft", "orig", "human", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	r := newProjectsRouter(t, svc, "google:1")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/projects/"+id, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id, nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestGetProjectBadID(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	r := newProjectsRouter(t, svc, "google:1")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/projects/not-a-uuid", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", resp.Code)
	}
}

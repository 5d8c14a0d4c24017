package credits

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCreditsRouter(t *testing.T, svc *Service, userID string, guest bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", guest)
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func TestGetCreditsAuthenticated(t *testing.T) {
	svc := newTestService()
	svc.Users.(*MemoryStore).SetBalance("google:1", 5)
	r := newCreditsRouter(t, svc, "google:1", false)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/credits", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"credits":5`) {
		t.Fatalf("expected credits 5 in body: %s", resp.Body.String())
	}
}

func TestGetCreditsUnknownUser(t *testing.T) {
	svc := newTestService()
	r := newCreditsRouter(t, svc, "google:missing", false)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/credits", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGetCreditsGuestSeeded(t *testing.T) {
	svc := newTestService()
	r := newCreditsRouter(t, svc, "guest:device-1", true)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/credits", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"credits":3`) {
		t.Fatalf("expected seeded guest credits in body: %s", resp.Body.String())
	}
}

func TestPurchaseRejectsGuest(t *testing.T) {
	svc := newTestService()
	r := newCreditsRouter(t, svc, "guest:device-1", true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/credits/purchase", strings.NewReader(`{"amount":10}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestPurchaseRejectsBadAmount(t *testing.T) {
	svc := newTestService()
	svc.Users.(*MemoryStore).SetBalance("google:1", 0)
	r := newCreditsRouter(t, svc, "google:1", false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/credits/purchase", strings.NewReader(`{"amount":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPurchaseAddsBalance(t *testing.T) {
	svc := newTestService()
	svc.Users.(*MemoryStore).SetBalance("google:1", 2)
	r := newCreditsRouter(t, svc, "google:1", false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/credits/purchase", strings.NewReader(`{"amount":10}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"credits":12`) {
		t.Fatalf("expected new balance 12 in body: %s", resp.Body.String())
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter("test", rate.Limit(1), 1)
	defer limiter.Stop()

	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec1 := performRequest(r, http.MethodGet, "/", map[string]string{"User-Agent": "test"})
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec1.Code)
	}

	rec2 := performRequest(r, http.MethodGet, "/", map[string]string{"User-Agent": "test"})
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on rapid second request, got %d", rec2.Code)
	}
	if rec2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", rec2.Header().Get("Retry-After"))
	}
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter("test", rate.Limit(1), 1)
	defer limiter.Stop()

	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")
	if limiter.Visitors() != 2 {
		t.Fatalf("expected 2 visitors, got %d", limiter.Visitors())
	}

	limiter.evictIdle(time.Now().Add(time.Minute))
	if limiter.Visitors() != 2 {
		t.Fatalf("recent visitors must be kept")
	}

	limiter.evictIdle(time.Now().Add(visitorIdleTimeout + time.Second))
	if limiter.Visitors() != 0 {
		t.Fatalf("expected idle visitors to be evicted, %d left", limiter.Visitors())
	}

	limiter.Stop()
	limiter.Stop()
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(true))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "headers") })
	r.GET("/api/vehicles", func(c *gin.Context) { c.String(http.StatusOK, "[]") })

	rec := performRequest(r, http.MethodGet, "/", map[string]string{"User-Agent": "test"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	required := []string{"X-Frame-Options", "X-Content-Type-Options", "X-XSS-Protection", "Referrer-Policy", "Content-Security-Policy", "Strict-Transport-Security"}
	for _, header := range required {
		if rec.Header().Get(header) == "" {
			t.Fatalf("expected header %s to be set", header)
		}
	}
	if rec.Header().Get("Cache-Control") != "" {
		t.Fatalf("pages must not get the API cache header")
	}

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "img-src 'self' data: "+ProviderImageHost) {
		t.Fatalf("expected provider image host in CSP, got %q", csp)
	}
	if strings.Contains(csp, "unsafe-inline") {
		t.Fatalf("release CSP must not allow inline code")
	}

	api := performRequest(r, http.MethodGet, "/api/vehicles", map[string]string{"User-Agent": "test"})
	if api.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store on API responses, got %q", api.Header().Get("Cache-Control"))
	}
}

func TestDevelopmentCSP(t *testing.T) {
	csp := buildCSPPolicy(false)
	if !strings.Contains(csp, "'unsafe-inline'") || !strings.Contains(csp, "ws:") {
		t.Fatalf("unexpected development CSP %q", csp)
	}
}

func TestSecurityScanDetection(t *testing.T) {
	r := gin.New()
	r.Use(SecurityScanDetection())
	r.GET("/.env", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := performRequest(r, http.MethodGet, "/.env?query=select", map[string]string{"User-Agent": "test"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status for suspicious path: %d", rec.Code)
	}
}

func TestHTTPMethodFilter(t *testing.T) {
	r := gin.New()
	r.Use(HTTPMethodFilter([]string{http.MethodGet}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := performRequest(r, http.MethodPost, "/", map[string]string{"User-Agent": "test"})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for blocked method, got %d", rec.Code)
	}
}

func TestUserAgentFilter(t *testing.T) {
	r := gin.New()
	r.Use(UserAgentFilter())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	recEmpty := performRequest(r, http.MethodGet, "/", map[string]string{})
	if recEmpty.Code != http.StatusForbidden {
		t.Fatalf("expected forbidden for empty UA, got %d", recEmpty.Code)
	}

	recSuspicious := performRequest(r, http.MethodGet, "/", map[string]string{"User-Agent": "sqlmap"})
	if recSuspicious.Code != http.StatusForbidden {
		t.Fatalf("expected forbidden for suspicious UA, got %d", recSuspicious.Code)
	}

	recOk := performRequest(r, http.MethodGet, "/", map[string]string{"User-Agent": "Mozilla"})
	if recOk.Code != http.StatusOK {
		t.Fatalf("expected success for benign UA, got %d", recOk.Code)
	}
}

func TestHoneypotEndpoints(t *testing.T) {
	r := gin.New()
	r.Use(HoneypotEndpoints(50 * time.Millisecond))
	r.GET("/admin.php", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/fahrzeuge", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	start := time.Now()
	rec := performRequest(r, http.MethodGet, "/admin.php", map[string]string{"User-Agent": "Mozilla"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected honeypot to return 404, got %d", rec.Code)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Fatalf("expected honeypot to delay response")
	}

	if rec := performRequest(r, http.MethodGet, "/fahrzeuge", map[string]string{"User-Agent": "Mozilla"}); rec.Code != http.StatusOK {
		t.Fatalf("expected regular path to pass, got %d", rec.Code)
	}
}

func TestHoneypotStopsOnCancel(t *testing.T) {
	r := gin.New()
	r.Use(HoneypotEndpoints(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/wp-login.php", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("honeypot ignored a cancelled request")
	}
}

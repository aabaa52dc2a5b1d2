package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// ProviderImageHost serves the listing pictures
const ProviderImageHost = "https://img.classistatic.de"

// SecurityHeaders adds the browser hardening headers. API responses are
// never cached since listings are always fetched fresh.
func SecurityHeaders(release bool) gin.HandlerFunc {
	csp := buildCSPPolicy(release)

	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", csp)
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Server", "")

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}

// SecurityScanDetection logs probing requests for fail2ban
func SecurityScanDetection() gin.HandlerFunc {
	suspiciousPaths := []string{
		".env", ".git", ".DS_Store", "wp-admin", "phpmyadmin",
		".htaccess", "config.php", "wp-config.php", ".ssh", "id_rsa",
		"backup", ".bak", ".sql", "credentials",
	}
	sqlKeywords := []string{"union", "select", "drop", "insert", "sleep("}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		ip := c.ClientIP()

		for _, suspicious := range suspiciousPaths {
			if strings.Contains(path, suspicious) {
				log.Warn("Security scan attempt", "ip", ip, "method", c.Request.Method, "path", path)
				break
			}
		}

		query := strings.ToLower(c.Request.URL.RawQuery)
		for _, kw := range sqlKeywords {
			if strings.Contains(query, kw) {
				log.Warn("SQL injection attempt", "ip", ip, "query", c.Request.URL.RawQuery)
				break
			}
		}

		c.Next()
	}
}

// HTTPMethodFilter rejects every method not listed
func HTTPMethodFilter(allowedMethods []string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, method := range allowedMethods {
		allowed[method] = true
	}

	return func(c *gin.Context) {
		if !allowed[c.Request.Method] {
			log.Warn("Blocked HTTP method", "method", c.Request.Method, "ip", c.ClientIP())
			c.JSON(http.StatusMethodNotAllowed, gin.H{
				"error": "Method not allowed",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserAgentFilter blocks missing user agents and known attack tools
func UserAgentFilter() gin.HandlerFunc {
	suspiciousAgents := []string{
		"sqlmap", "nikto", "nmap", "masscan", "zgrab", "gobuster",
		"dirb", "dirbuster", "burp", "w3af", "havij", "libwww",
	}

	return func(c *gin.Context) {
		userAgent := strings.ToLower(c.GetHeader("User-Agent"))
		ip := c.ClientIP()

		if userAgent == "" {
			log.Warn("Blocked empty user agent", "ip", ip)
			c.JSON(http.StatusForbidden, gin.H{"error": "User agent required"})
			c.Abort()
			return
		}

		for _, suspicious := range suspiciousAgents {
			if strings.Contains(userAgent, suspicious) {
				log.Warn("Blocked suspicious user agent", "ip", ip, "agent", userAgent)
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// HoneypotEndpoints answers well-known admin paths with a slow 404
func HoneypotEndpoints(delay time.Duration) gin.HandlerFunc {
	honeypots := map[string]struct{}{}
	for _, p := range []string{
		"/admin.php", "/wp-login.php", "/login.php", "/admin/login",
		"/administrator", "/admin/admin", "/user/login", "/auth/login",
		"/xmlrpc.php", "/wp-admin/admin-ajax.php", "/api/v1/login",
	} {
		honeypots[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, hit := honeypots[path]; !hit {
			c.Next()
			return
		}

		log.Warn("Honeypot triggered", "ip", c.ClientIP(), "path", path)

		select {
		case <-time.After(delay):
		case <-c.Request.Context().Done():
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		c.Abort()
	}
}

// buildCSPPolicy allows the provider's image host and the live filter
// socket. Development keeps inline scripts for the dev server.
func buildCSPPolicy(release bool) string {
	if !release {
		return "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' 'unsafe-eval'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: " + ProviderImageHost + "; " +
			"connect-src 'self' ws: wss:;"
	}

	return "default-src 'self'; " +
		"script-src 'self'; " +
		"style-src 'self'; " +
		"img-src 'self' data: " + ProviderImageHost + "; " +
		"connect-src 'self' wss:; " +
		"font-src 'self'; " +
		"object-src 'none'; " +
		"base-uri 'self'; " +
		"form-action 'self'; " +
		"frame-ancestors 'none'; " +
		"upgrade-insecure-requests;"
}

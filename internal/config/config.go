// Package config reads the server settings from the environment. main
// loads a .env file first, so values there count as environment too.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Config is the complete server configuration
type Config struct {
	Port         string
	GinMode      string
	LogLevel     string
	SiteLocation string

	MobileDEBaseURL  string
	MobileDEUsername string
	MobileDEPassword string
	MobileDESellerID string

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	ContactTo  string

	CORSOrigins []string

	APIRateLimit      rate.Limit
	APIRateBurst      int
	ContactRateLimit  rate.Limit
	ContactRateBurst  int
	QuerySyncWindow   time.Duration
	ProviderTimeout   time.Duration
	ShutdownGraceTime time.Duration
}

// LoadDefaults fills every field with its default
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.LogLevel = "info"
	c.SiteLocation = "Jülich"
	c.MobileDEBaseURL = "https://services.mobile.de"
	c.SMTPPort = 587
	c.ContactTo = "info@autocenter-juelich.de"
	c.CORSOrigins = []string{"*"}
	c.APIRateLimit = 10
	c.APIRateBurst = 20
	c.ContactRateLimit = rate.Every(time.Minute)
	c.ContactRateBurst = 3
	c.QuerySyncWindow = 250 * time.Millisecond
	c.ProviderTimeout = 15 * time.Second
	c.ShutdownGraceTime = 10 * time.Second
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	c := &Config{}
	c.LoadDefaults()

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("GIN_MODE", &c.GinMode)
	str("LOG_LEVEL", &c.LogLevel)
	str("SITE_LOCATION", &c.SiteLocation)
	str("MOBILEDE_BASE_URL", &c.MobileDEBaseURL)
	str("MOBILEDE_USERNAME", &c.MobileDEUsername)
	str("MOBILEDE_PASSWORD", &c.MobileDEPassword)
	str("MOBILEDE_SELLER_ID", &c.MobileDESellerID)
	str("SMTP_HOST", &c.SMTPHost)
	str("SMTP_USER", &c.SMTPUser)
	str("SMTP_PASS", &c.SMTPPass)
	str("SMTP_FROM", &c.SMTPFrom)
	str("CONTACT_TO", &c.ContactTo)

	if c.SMTPFrom == "" {
		c.SMTPFrom = c.SMTPUser
	}
	c.SMTPSecure = strings.TrimSpace(getenv("SMTP_SECURE")) == "true"

	if v := getenv("CORS_ORIGINS"); strings.TrimSpace(v) != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.CORSOrigins = origins
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SMTP_PORT", &c.SMTPPort},
		{"API_RATE_BURST", &c.APIRateBurst},
		{"CONTACT_RATE_BURST", &c.ContactRateBurst},
	}
	for _, i := range ints {
		if err := parseInt(getenv, i.key, i.dst); err != nil {
			return nil, err
		}
	}

	limits := []struct {
		key string
		dst *rate.Limit
	}{
		{"API_RATE_LIMIT", &c.APIRateLimit},
		{"CONTACT_RATE_LIMIT", &c.ContactRateLimit},
	}
	for _, l := range limits {
		if err := parseLimit(getenv, l.key, l.dst); err != nil {
			return nil, err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"QUERY_SYNC_WINDOW", &c.QuerySyncWindow},
		{"PROVIDER_TIMEOUT", &c.ProviderTimeout},
		{"SHUTDOWN_GRACE_TIME", &c.ShutdownGraceTime},
	}
	for _, d := range durations {
		if err := parseDuration(getenv, d.key, d.dst); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func parseInt(getenv func(string) string, key string, dst *int) error {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fmt.Errorf("invalid %s %q: must be a non-negative integer", key, raw)
	}
	*dst = v
	return nil
}

// parseLimit reads events per second; "1/m" style values are per minute
func parseLimit(getenv func(string) string, key string, dst *rate.Limit) error {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return nil
	}
	per := time.Second
	if num, unit, ok := strings.Cut(raw, "/"); ok {
		switch unit {
		case "s":
		case "m":
			per = time.Minute
		case "h":
			per = time.Hour
		default:
			return fmt.Errorf("invalid %s %q: unit must be s, m or h", key, raw)
		}
		raw = num
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid %s %q: must be a positive number", key, raw)
	}
	*dst = rate.Limit(v / per.Seconds())
	return nil
}

func parseDuration(getenv func(string) string, key string, dst *time.Duration) error {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid %s %q: must be a positive duration", key, raw)
	}
	*dst = v
	return nil
}

// Release reports whether gin runs in release mode
func (c *Config) Release() bool {
	return c.GinMode == "release"
}

// ProviderConfigured reports whether the mobile.de account is set up
func (c *Config) ProviderConfigured() bool {
	return c.MobileDEUsername != "" && c.MobileDEPassword != "" && c.MobileDESellerID != ""
}

// Package mobilede reads the dealer's ads from the mobile.de Seller API.
// Every call goes to the provider; nothing is cached.
package mobilede

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

const (
	// DefaultBaseURL is the production Seller API host
	DefaultBaseURL = "https://services.mobile.de"

	// MediaType is the vendor media type the Seller API answers with
	MediaType = "application/vnd.de.mobile.api+json"

	maxErrorLen = 600
)

var (
	ErrAdNotFound         = errors.New("mobile.de ad not found")
	ErrMissingCredentials = errors.New("missing MOBILEDE_USERNAME or MOBILEDE_PASSWORD")
	ErrMissingSellerID    = errors.New("missing MOBILEDE_SELLER_ID")
)

// StatusError is a non-2xx answer from the provider
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("mobile.de %s failed: %d %s %s", e.Op, e.Status, http.StatusText(e.Status), e.Body)
	msg = strings.TrimSpace(msg)
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return msg
}

// Config holds the account settings. Missing values are reported when a
// request is made, not at construction.
type Config struct {
	BaseURL  string
	Username string
	Password string
	SellerID string
}

// Client talks to the Seller API
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets a 15 second timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// ListAds returns every ad of the configured seller
func (c *Client) ListAds(ctx context.Context) ([]models.Ad, error) {
	var list models.AdList
	if err := c.get(ctx, "ads fetch", "/ads", &list); err != nil {
		return nil, err
	}
	log.Debug("Fetched seller ads", "count", len(list.Ads))
	if list.Ads == nil {
		return []models.Ad{}, nil
	}
	return list.Ads, nil
}

// GetAd returns one ad. A 404 from the provider is ErrAdNotFound.
func (c *Client) GetAd(ctx context.Context, id string) (*models.Ad, error) {
	var ad models.Ad
	if err := c.get(ctx, "ad fetch", "/ads/"+url.PathEscape(id), &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	if c.cfg.Username == "" || c.cfg.Password == "" {
		return ErrMissingCredentials
	}
	if c.cfg.SellerID == "" {
		return ErrMissingSellerID
	}

	endpoint := c.cfg.BaseURL + "/seller-api/sellers/" + url.PathEscape(c.cfg.SellerID) + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("mobile.de %s: build request: %w", op, err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", MediaType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mobile.de %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/ads/") {
		return ErrAdNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mobile.de %s: decode response: %w", op, err)
	}
	return nil
}

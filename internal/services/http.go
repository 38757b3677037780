// HTTP [Source] implementation
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// maxPayloadBytes bounds the roster body read from the network.
const maxPayloadBytes = 16 << 20

// HTTPSource fetches the roster with a single GET request.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPSource creates an [HTTPSource] for url.
//
// A nil client uses [http.DefaultClient]; a nil limiter disables throttling.
func NewHTTPSource(url string, client *http.Client, limiter *rate.Limiter) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, httpClient: client, limiter: limiter}
}

// NewLimiter returns a limiter allowing one fetch per interval, or nil when interval is not positive.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// NewHTTPClient builds the client used for the roster request.
//
// When oauth is enabled the client obtains and refreshes a client-credentials token from the token URL.
func NewHTTPClient(ctx context.Context, timeout time.Duration, oauth shared.OAuthConfig) *http.Client {
	base := &http.Client{Timeout: timeout}
	if !oauth.Enabled() {
		return base
	}

	cc := clientcredentials.Config{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		TokenURL:     oauth.TokenURL,
		Scopes:       oauth.Scopes,
	}
	client := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	client.Timeout = timeout
	return client
}

// Name returns the source URL.
func (h *HTTPSource) Name() string { return h.url }

// Fetch performs the GET request and decodes the roster.
func (h *HTTPSource) Fetch(ctx context.Context) ([]models.Member, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, truncate(body, 200))
	}

	return DecodeMembers(body)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

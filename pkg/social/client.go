// Package social wraps the social-profile detection API. Detection is a
// best-effort enhancement: failures surface as a typed reason and the flow
// continues with defaults.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/model"
)

const defaultBaseURL = "https://api.socialprofile.dev/v1"

// FailureReason categorizes detection failures for the flow layer.
type FailureReason string

const (
	ReasonNotFound    FailureReason = "profile_not_found"
	ReasonRateLimited FailureReason = "rate_limited"
	ReasonUnavailable FailureReason = "service_unavailable"
)

// DetectionError is a typed failure; it never propagates past this package as
// a panic. The flow converts it into a detection-failed message.
type DetectionError struct {
	Reason FailureReason
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("social: detection failed: %s", e.Reason)
}

// Client detects social profiles for a place.
type Client interface {
	Detect(ctx context.Context, placeID string) (instagram, facebook model.PlatformMetrics, err error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a detection client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type profileResponse struct {
	Instagram *platformPayload `json:"instagram"`
	Facebook  *platformPayload `json:"facebook"`
}

type platformPayload struct {
	Followers     int     `json:"followers"`
	AvgLikes      float64 `json:"avg_recent_likes"`
	PageLikes     int     `json:"page_likes"`
	PaidPromotion bool    `json:"paid_promotion"`
	Inactive      bool    `json:"inactive"`
}

// Detect fetches platform metrics for a place. A transient server error is
// retried once before being reported; all failures come back as a typed
// DetectionError.
func (c *httpClient) Detect(ctx context.Context, placeID string) (model.PlatformMetrics, model.PlatformMetrics, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-ctx.Done():
				return model.PlatformMetrics{}, model.PlatformMetrics{}, &DetectionError{Reason: ReasonUnavailable}
			}
			zap.L().Debug("social: retrying detection", zap.String("place_id", placeID))
		}

		ig, fb, retryable, err := c.detectOnce(ctx, placeID)
		if err == nil {
			return ig, fb, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return model.PlatformMetrics{}, model.PlatformMetrics{}, lastErr
}

func (c *httpClient) detectOnce(ctx context.Context, placeID string) (ig, fb model.PlatformMetrics, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profiles/"+placeID, nil)
	if err != nil {
		return ig, fb, false, eris.Wrap(err, "social: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return ig, fb, true, &DetectionError{Reason: ReasonUnavailable}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ig, fb, false, &DetectionError{Reason: ReasonNotFound}
	case resp.StatusCode == http.StatusTooManyRequests:
		return ig, fb, true, &DetectionError{Reason: ReasonRateLimited}
	case resp.StatusCode >= 500:
		return ig, fb, true, &DetectionError{Reason: ReasonUnavailable}
	case resp.StatusCode != http.StatusOK:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ig, fb, false, eris.Errorf("social: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ig, fb, false, eris.Wrap(err, "social: decode response")
	}

	return toMetrics(parsed.Instagram), toMetrics(parsed.Facebook), false, nil
}

// toMetrics maps the provider payload onto the concrete fields the enhanced
// social estimator consumes; anything else in the payload is dropped here.
func toMetrics(p *platformPayload) model.PlatformMetrics {
	if p == nil {
		return model.PlatformMetrics{}
	}
	return model.PlatformMetrics{
		Followers:     p.Followers,
		AvgLikes:      p.AvgLikes,
		PageLikes:     p.PageLikes,
		PaidPromotion: p.PaidPromotion,
		Inactive:      p.Inactive,
		HasEngagement: p.AvgLikes > 0,
	}
}

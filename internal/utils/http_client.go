package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://mail.example.com", 5*time.Second)
//	resp, err := client.R().Post("/messages")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient bound to baseURL.
// A positive timeout bounds every request made through the client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

// retryWait is the initial pause between retries; resty backs off from it.
const retryWait = 50 * time.Millisecond

// WithRetries makes the client repeat a request up to count more times when
// the server answers 429 or any 5xx status. It returns the receiver.
func (c *HTTPClient) WithRetries(count int) *HTTPClient {
	if count <= 0 {
		return c
	}

	c.SetRetryCount(count).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(10 * retryWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil || resp == nil {
				return false
			}
			return resp.StatusCode() == http.StatusTooManyRequests ||
				resp.StatusCode() >= http.StatusInternalServerError
		})
	return c
}

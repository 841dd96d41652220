package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Defaults used by NewHTTPClient for zero arguments.
const (
	DefaultClientTimeout = 15 * time.Second
	DefaultRetryWait     = 200 * time.Millisecond
	DefaultRetryMaxWait  = 2 * time.Second
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL.
//
// Requests that fail in transport or get 502, 503 or 504 are retried up to
// retries times with backoff between DefaultRetryWait and DefaultRetryMaxWait.
// A non-positive timeout selects DefaultClientTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, retries int) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	if retries < 0 {
		retries = 0
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(DefaultRetryWait).
		SetRetryMaxWaitTime(DefaultRetryMaxWait).
		AddRetryCondition(isRetryable)

	return &HTTPClient{Client: client}
}

func isRetryable(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

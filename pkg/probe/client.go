package probe

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultTimeout = 5 * time.Second

// Probe responses are small; reading stops after this many bytes.
const maxResponseBytes = 1 << 20

// HTTPDoer is the subset of *http.Client used by the probes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientFactory hands out the client used for a single check.
type HTTPClientFactory interface {
	CreateClient() HTTPDoer
}

type ClientFactoryFunc func() HTTPDoer

func (f ClientFactoryFunc) CreateClient() HTTPDoer {
	return f()
}

// NewClientFactory returns a factory producing a fresh *http.Client with the
// given timeout on every call. A non-positive timeout falls back to
// DefaultTimeout.
func NewClientFactory(timeout time.Duration) HTTPClientFactory {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return ClientFactoryFunc(func() HTTPDoer {
		return &http.Client{Timeout: timeout}
	})
}

var (
	errNoClient   = errors.New("client factory returned no client")
	errNoResponse = errors.New("client returned neither a response nor an error")
)

func createClient(factory HTTPClientFactory) (HTTPDoer, error) {
	if factory == nil {
		return nil, errNoClient
	}

	client := factory.CreateClient()
	if client == nil {
		return nil, errNoClient
	}
	return client, nil
}

// panicError turns a value recovered from a failing client into an error.
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("client panicked: %w", err)
	}
	return fmt.Errorf("client panicked: %v", r)
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}

// closeBody drains and closes the response body so the connection can be reused.
func closeBody(res *http.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
	_ = res.Body.Close()
}

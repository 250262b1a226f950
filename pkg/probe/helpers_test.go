package probe

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// recordingFactory hands out clients whose transport answers from respond
// and remembers every request that was sent.
type recordingFactory struct {
	mu       sync.Mutex
	requests []*http.Request
	created  int
	respond  func(req *http.Request) (*http.Response, error)
}

func (f *recordingFactory) CreateClient() HTTPDoer {
	f.mu.Lock()
	f.created++
	f.mu.Unlock()

	return &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()
		return f.respond(req)
	})}
}

func (f *recordingFactory) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func respondWith(status int, body string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

func failWith(err error) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return nil, err
	}
}

type mockDoer struct {
	mock.Mock
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	res, _ := args.Get(0).(*http.Response)
	return res, args.Error(1)
}

func envWith(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func mockAnyRequest() interface{} {
	return mock.AnythingOfType("*http.Request")
}

type panickingDoer struct {
	value interface{}
}

func (d panickingDoer) Do(*http.Request) (*http.Response, error) {
	panic(d.value)
}

// failingClientFactories covers clients that blow up instead of returning an error.
func failingClientFactories() map[string]HTTPClientFactory {
	return map[string]HTTPClientFactory{
		"panicking doer":     ClientFactoryFunc(func() HTTPDoer { return panickingDoer{value: "transport exploded"} }),
		"panicking on error": ClientFactoryFunc(func() HTTPDoer { return panickingDoer{value: io.ErrUnexpectedEOF} }),
		"nil client":         ClientFactoryFunc(func() HTTPDoer { return nil }),
		"nil http client":    ClientFactoryFunc(func() HTTPDoer { return (*http.Client)(nil) }),
		"nil response":       ClientFactoryFunc(func() HTTPDoer { return nilResponseDoer{} }),
	}
}

type nilResponseDoer struct{}

func (nilResponseDoer) Do(*http.Request) (*http.Response, error) {
	return nil, nil
}

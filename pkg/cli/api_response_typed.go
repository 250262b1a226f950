package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

type TypedAPIResponse[TBody any] struct {
	StatusCode int   `json:"statusCode"`
	Body       TBody `json:"body"`
	Error      error `json:"-"`
}

// NewTypedAPIResponse decodes a JSON response into TBody. Error status codes
// are not errors by themselves: the probe server reports unhealthy probes
// with a 5xx code and a regular body.
func NewTypedAPIResponse[TBody any](body TBody) func(resp *http.Response, err error) *TypedAPIResponse[TBody] {
	return func(resp *http.Response, err error) *TypedAPIResponse[TBody] {
		apiRes := TypedAPIResponse[TBody]{
			Error: err,
		}
		if resp == nil {
			return &apiRes
		}
		defer resp.Body.Close()

		apiRes.StatusCode = resp.StatusCode

		out, err := io.ReadAll(resp.Body)
		if err != nil {
			apiRes.Error = errors.Wrap(err, "failed to read body")
			return &apiRes
		}

		contentType := strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0])
		if contentType != "application/json" {
			apiRes.Error = fmt.Errorf("unexpected response (status %d, content type %q): %s", resp.StatusCode, contentType, strings.TrimSpace(string(out)))
			return &apiRes
		}

		if err := json.Unmarshal(out, &body); err != nil {
			apiRes.Error = errors.Wrapf(err, "failed to parse body as JSON")
			return &apiRes
		}

		apiRes.Body = body
		return &apiRes
	}
}

func (resp *TypedAPIResponse[TBody]) Err() error {
	return resp.Error
}

// Pretty renders the body as indented, colourised JSON.
func (resp *TypedAPIResponse[TBody]) Pretty() (string, error) {
	jsonBody, err := json.Marshal(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to marshal body as JSON")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, jsonBody, "", "    "); err != nil {
		return "", err
	}

	return string(pretty.Color(buf.Bytes(), nil)), nil
}

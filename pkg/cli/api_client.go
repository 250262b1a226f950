package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mittwald/identityprobe/pkg/probe"
)

const DefaultAPIAddress = "http://localhost:9102"

type APIClient struct {
	apiAddress string
	client     *http.Client
}

func NewAPIClient(apiAddress string) *APIClient {
	return &APIClient{
		apiAddress: strings.TrimRight(apiAddress, "/"),
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// ProbeStatus asks the server to run a single probe.
func (api *APIClient) ProbeStatus(name string) *TypedAPIResponse[probe.ProbeResponse] {
	return NewTypedAPIResponse(probe.ProbeResponse{})(api.client.Get(fmt.Sprintf("%s/probes/%s", api.apiAddress, url.PathEscape(name))))
}

func (api *APIClient) ProbeList() *TypedAPIResponse[probe.ProbeListResponse] {
	return NewTypedAPIResponse(probe.ProbeListResponse{})(api.client.Get(api.apiAddress + "/probes"))
}

package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mittwald/identityprobe/internal/config"
	"github.com/mittwald/identityprobe/internal/helper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTokenEndpoint = "http://169.254.169.254/metadata/identity/oauth2/token"
	DefaultTokenResource = "https://management.azure.com/"

	tokenAPIVersion = "2018-02-01"

	tokenHealthyMessage   = "The Pod Identity is able to get token as expected."
	tokenUnhealthyMessage = "The Pod Identity is not able to get token."
)

// TokenProbe checks that a managed identity token can be obtained from the
// instance metadata endpoint. It does not verify which identity the token
// belongs to.
type TokenProbe struct {
	name    string
	url     string
	clients HTTPClientFactory
}

func NewTokenProbe(name string, cfg *config.Token, clients HTTPClientFactory) (*TokenProbe, error) {
	endpoint := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Endpoint), DefaultTokenEndpoint, "endpoint", "token")
	resource := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Resource), DefaultTokenResource, "resource", "token")
	timeoutStr := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Timeout), DefaultTimeout.String(), "timeout", "token")

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid token endpoint %q", endpoint)
	}

	q := u.Query()
	q.Set("api-version", tokenAPIVersion)
	q.Set("resource", resource)
	u.RawQuery = q.Encode()

	if clients == nil {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout duration: %w", err)
		}
		clients = NewClientFactory(timeout)
	}

	return &TokenProbe{
		name:    name,
		url:     u.String(),
		clients: clients,
	}, nil
}

func (t *TokenProbe) Check(ctx context.Context) (Result, error) {
	logger := log.WithFields(log.Fields{"kind": "probe", "name": t.name, "host": t.url})

	switch outcome := t.fetchToken(ctx).(type) {
	case tokenAcquired:
		logger.WithField("status", "alive").Debug()
		return Healthy(tokenHealthyMessage), nil
	case tokenFailure:
		logger.WithField("status", "failed").WithError(outcome.reason).Warn("unable to get token")
	}

	return Unhealthy(tokenUnhealthyMessage), nil
}

func (t *TokenProbe) fetchToken(ctx context.Context) (outcome tokenOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = tokenFailure{reason: panicError(r)}
		}
	}()

	client, err := createClient(t.clients)
	if err != nil {
		return tokenFailure{reason: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return tokenFailure{reason: err}
	}
	req.Header.Set("Metadata", "true")

	res, err := client.Do(req)
	if err != nil {
		return tokenFailure{reason: fmt.Errorf("token request failed: %w", err)}
	}
	if res == nil {
		return tokenFailure{reason: errNoResponse}
	}
	defer closeBody(res)

	if !isSuccessStatus(res.StatusCode) {
		return tokenFailure{reason: fmt.Errorf("metadata endpoint returned status %d", res.StatusCode)}
	}

	if res.Body == nil {
		return tokenFailure{reason: errors.New("metadata endpoint returned no body")}
	}

	return decodeTokenResponse(res.Body)
}

package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mittwald/identityprobe/internal/config"
	"github.com/mittwald/identityprobe/internal/helper"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultAgentHostEnv = "HOST_IP"
	DefaultAgentPort    = "8085"
	DefaultAgentPath    = "/healthz"

	agentHealthyMessage   = "The NMI liveness is responding."
	agentUnhealthyMessage = "The NMI liveness probe did not respond as expected."
)

// AgentLivenessProbe checks the health endpoint of the node identity agent
// running on the host named by an environment variable.
type AgentLivenessProbe struct {
	name       string
	hostEnv    string
	port       string
	path       string
	expectBody string
	clients    HTTPClientFactory
	lookupEnv  func(string) (string, bool)
}

func NewAgentLivenessProbe(name string, cfg *config.Agent, clients HTTPClientFactory) (*AgentLivenessProbe, error) {
	hostEnv := helper.SetDefaultStringIfEmpty(cfg.HostEnv, DefaultAgentHostEnv, "hostEnv", "agent")
	port := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), DefaultAgentPort, "port", "agent")
	path := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Path), DefaultAgentPath, "path", "agent")
	timeoutStr := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Timeout), DefaultTimeout.String(), "timeout", "agent")

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if clients == nil {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout duration: %w", err)
		}
		clients = NewClientFactory(timeout)
	}

	return &AgentLivenessProbe{
		name:       name,
		hostEnv:    hostEnv,
		port:       port,
		path:       path,
		expectBody: helper.ResolveEnv(cfg.ExpectBody),
		clients:    clients,
		lookupEnv:  os.LookupEnv,
	}, nil
}

// Check returns a *ConfigError without touching the network when the host
// variable is not set.
func (a *AgentLivenessProbe) Check(ctx context.Context) (Result, error) {
	host, ok := a.lookupEnv(a.hostEnv)
	host = strings.TrimSpace(host)
	if !ok || host == "" {
		return Result{}, &ConfigError{
			Probe:  a.name,
			Reason: fmt.Sprintf("environment variable %s is not set", a.hostEnv),
		}
	}

	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, a.port),
		Path:   a.path,
	}
	urlStr := u.String()
	logger := log.WithFields(log.Fields{"kind": "probe", "name": a.name, "host": urlStr})

	if err := a.call(ctx, urlStr); err != nil {
		logger.WithField("status", "failed").WithError(err).Warn("agent liveness check failed")
		return Unhealthy(agentUnhealthyMessage), nil
	}

	logger.WithField("status", "alive").Debug()
	return Healthy(agentHealthyMessage), nil
}

func (a *AgentLivenessProbe) call(ctx context.Context, urlStr string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	client, err := createClient(a.clients)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %q failed: %w", urlStr, err)
	}
	if res == nil {
		return errNoResponse
	}
	defer closeBody(res)

	if !isSuccessStatus(res.StatusCode) {
		return fmt.Errorf("agent %q returned status %d", urlStr, res.StatusCode)
	}

	if a.expectBody == "" {
		return nil
	}

	if res.Body == nil {
		return fmt.Errorf("agent responded without a body, expected %q", a.expectBody)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read agent response: %w", err)
	}

	if got := strings.TrimSpace(string(body)); got != a.expectBody {
		return fmt.Errorf("agent responded with %q, expected %q", got, a.expectBody)
	}

	return nil
}

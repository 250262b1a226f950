package probe

import "context"

// Status is the binary outcome of a single check.
type Status string

// The two outcomes a check can report.
const (
	StatusHealthy   Status = "Healthy"
	StatusUnhealthy Status = "Unhealthy"
)

// Probe is a single stateless health check. Runtime failures are reported as
// an Unhealthy Result; a non-nil error is returned only when the check could
// not even be attempted (see ConfigError).
type Probe interface {
	Check(ctx context.Context) (Result, error)
}

// Result is what a check reports: its Status and a fixed human-readable
// Description. Failure reasons are logged, never put into the Description.
type Result struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
}

func Healthy(description string) Result {
	return Result{Status: StatusHealthy, Description: description}
}

func Unhealthy(description string) Result {
	return Result{Status: StatusUnhealthy, Description: description}
}

func (r Result) IsHealthy() bool {
	return r.Status == StatusHealthy
}

// StatusMisconfigured is reported by the probe server when a probe could not
// be attempted because of a ConfigError.
const StatusMisconfigured Status = "Misconfigured"

type ProbeResponse struct {
	Name        string `json:"name"`
	Status      Status `json:"status"`
	Description string `json:"description"`
}

type ProbeInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type ProbeListResponse struct {
	Probes []ProbeInfo `json:"probes"`
}

// CheckFunc adapts a function into a Probe.
type CheckFunc func(ctx context.Context) (Result, error)

func (f CheckFunc) Check(ctx context.Context) (Result, error) {
	return f(ctx)
}

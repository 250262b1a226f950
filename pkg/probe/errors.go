package probe

import (
	"errors"
	"fmt"
)

// ConfigError signals that a probe is misconfigured and did not attempt its
// check. It is kept apart from Unhealthy results so that operators can tell
// "misconfigured" from "agent is down".
type ConfigError struct {
	Probe  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("probe %q is misconfigured: %s", e.Probe, e.Reason)
}

func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

package probe

import (
	"fmt"

	"github.com/mittwald/identityprobe/internal/config"
	"github.com/pkg/errors"
)

const (
	KindToken = "token"
	KindAgent = "agent"
)

// BuildProbesFromConfig creates one probe per configured probe block. When
// clients is nil, every probe gets its own factory honouring its timeout.
func BuildProbesFromConfig(cfg *config.Ignition, clients HTTPClientFactory) (map[string]Probe, error) {
	result := make(map[string]Probe, len(cfg.Probes))

	for i := range cfg.Probes {
		p := &cfg.Probes[i]

		if p.Name == "" {
			return nil, fmt.Errorf("probe #%d has no name", i+1)
		}
		if _, exists := result[p.Name]; exists {
			return nil, fmt.Errorf("probe %q is defined more than once", p.Name)
		}

		var (
			built Probe
			err   error
		)

		switch {
		case p.Token != nil && p.Agent != nil:
			return nil, fmt.Errorf("probe %q must configure either a token or an agent block, not both", p.Name)
		case p.Token != nil:
			built, err = NewTokenProbe(p.Name, p.Token, clients)
		case p.Agent != nil:
			built, err = NewAgentLivenessProbe(p.Name, p.Agent, clients)
		default:
			return nil, fmt.Errorf("probe %q has neither a token nor an agent block", p.Name)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to build probe %q", p.Name)
		}

		result[p.Name] = built
	}

	return result, nil
}

// KindOf reports the configuration block kind a probe was built from.
func KindOf(p Probe) string {
	switch p.(type) {
	case *TokenProbe:
		return KindToken
	case *AgentLivenessProbe:
		return KindAgent
	default:
		return "custom"
	}
}

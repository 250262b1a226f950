package probe

import (
	"context"
	"testing"

	"github.com/mittwald/identityprobe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProbesFromConfigDefaults(t *testing.T) {
	cfg := &config.Ignition{}
	cfg.ApplyDefaults()

	probes, err := BuildProbesFromConfig(cfg, nil)

	require.NoError(t, err)
	require.Len(t, probes, 2)
	assert.IsType(t, &TokenProbe{}, probes[config.DefaultTokenProbeName])
	assert.IsType(t, &AgentLivenessProbe{}, probes[config.DefaultAgentProbeName])
	assert.Equal(t, KindToken, KindOf(probes[config.DefaultTokenProbeName]))
	assert.Equal(t, KindAgent, KindOf(probes[config.DefaultAgentProbeName]))
}

func TestBuildProbesFromConfigRejectsInvalidBlocks(t *testing.T) {
	cases := []struct {
		name   string
		probes []config.Probe
		err    string
	}{
		{"no kind", []config.Probe{{Name: "empty"}}, "neither a token nor an agent block"},
		{"both kinds", []config.Probe{{Name: "both", Token: &config.Token{}, Agent: &config.Agent{}}}, "not both"},
		{"unnamed", []config.Probe{{Token: &config.Token{}}}, "has no name"},
		{"duplicate", []config.Probe{{Name: "a", Token: &config.Token{}}, {Name: "a", Agent: &config.Agent{}}}, "more than once"},
		{"bad timeout", []config.Probe{{Name: "slow", Token: &config.Token{Timeout: "forever"}}}, `failed to build probe "slow"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildProbesFromConfig(&config.Ignition{Probes: tc.probes}, nil)
			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func TestBuildProbesFromConfigUsesInjectedFactory(t *testing.T) {
	factory := &recordingFactory{respond: respondWith(200, `{"access_token":"abc123"}`)}
	cfg := &config.Ignition{Probes: []config.Probe{{Name: "identity", Token: &config.Token{}}}}

	probes, err := BuildProbesFromConfig(cfg, factory)
	require.NoError(t, err)

	result, err := probes["identity"].Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.IsHealthy())
	assert.Len(t, factory.Requests(), 1)
}

type staticProbe struct {
	result Result
	err    error
}

func (s staticProbe) Check(context.Context) (Result, error) {
	return s.result, s.err
}

func TestKindOfCustomProbe(t *testing.T) {
	assert.Equal(t, "custom", KindOf(staticProbe{}))
}

package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTokenProbeName = "identity"
	DefaultAgentProbeName = "nmi"
)

// GenerateFromConfigDir merges every *.hcl file below configDir into the
// ignition config. A config dir that does not exist yields the built-in
// probes; a dir without any .hcl file is an error.
func (ignitionConfig *Ignition) GenerateFromConfigDir(configDir string) error {
	configDir = strings.TrimRight(configDir, "/")

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		log.Infof("config dir %s does not exist, using built-in probes", configDir)
		ignitionConfig.ApplyDefaults()
		return nil
	}

	matches, err := listConfigFiles(configDir)
	if err != nil {
		return err
	}

	for _, m := range matches {
		log.Infof("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "failed to read configuration file %s", m)
		}

		if err := hcl.Unmarshal(contents, ignitionConfig); err != nil {
			return errors.Wrapf(err, "could not parse configuration file %s", m)
		}
	}

	ignitionConfig.ApplyDefaults()
	return nil
}

// ApplyDefaults installs the built-in token and agent probes when no probe
// has been configured.
func (ignitionConfig *Ignition) ApplyDefaults() {
	if len(ignitionConfig.Probes) > 0 {
		return
	}

	ignitionConfig.Probes = []Probe{
		{Name: DefaultTokenProbeName, Token: &Token{}},
		{Name: DefaultAgentProbeName, Agent: &Agent{}},
	}
}

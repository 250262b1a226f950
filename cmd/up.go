package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mittwald/identityprobe/internal/config"
	"github.com/mittwald/identityprobe/pkg/probe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var probeListenPort int

func init() {
	rootCmd.AddCommand(up)
	up.PersistentFlags().IntVarP(&probeListenPort, "probe-listen-port", "p", probe.DefaultListenPort, "set the port to listen for probe requests")
}

var up = &cobra.Command{
	Use:   "up",
	Short: "Serve the configured probes over HTTP",
	Long:  "This sub-command loads the probe configuration and serves every probe on /probes/<name>, plus /metrics",
	Run: func(cmd *cobra.Command, args []string) {
		probeHandler, err := loadProbeHandler(configDir)
		if err != nil {
			log.Fatalf("failed to set up probes from config dir '%s': %s", configDir, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

		go func() {
			s := <-signals
			log.Infof("received event %s", s.String())
			cancel()
		}()

		log.WithField("probes", probeHandler.Names()).Infof("probe server listens on port %d", probeListenPort)
		if err := probe.RunProbeServer(ctx, probeHandler, probeListenPort); err != nil {
			log.Fatalf("probe server stopped with error: %s", err)
		}

		log.Info("probe server stopped without error")
	},
}

func loadProbeHandler(dir string) (*probe.Handler, error) {
	ignitionConfig := &config.Ignition{}

	if err := ignitionConfig.GenerateFromConfigDir(dir); err != nil {
		return nil, err
	}

	return probe.NewProbeHandler(ignitionConfig)
}

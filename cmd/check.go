package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mittwald/identityprobe/pkg/probe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	exitHealthy       = 0
	exitUnhealthy     = 1
	exitMisconfigured = 2
)

var checkTimeout time.Duration

func init() {
	rootCmd.AddCommand(check)
	check.Flags().DurationVar(&checkTimeout, "timeout", 10*time.Second, "abort the check after this duration")
}

var check = &cobra.Command{
	Use:        "check <probe>",
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"probe"},
	Short:      "Run a single probe once",
	Long: "This sub-command runs one probe once and exits with 0 when healthy, 1 when unhealthy and 2 when the probe is misconfigured.\n" +
		"It can be used as an init container or as an exec probe.",
	Run: func(cmd *cobra.Command, args []string) {
		probeHandler, err := loadProbeHandler(configDir)
		if err != nil {
			log.Errorf("failed to set up probes from config dir '%s': %s", configDir, err)
			os.Exit(exitMisconfigured)
		}

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		code := runCheck(ctx, probeHandler, args[0], cmd.OutOrStdout())
		cancel()

		os.Exit(code)
	},
}

func runCheck(ctx context.Context, probeHandler *probe.Handler, name string, out io.Writer) int {
	result, err := probeHandler.Execute(ctx, name)
	if err != nil {
		fmt.Fprintln(out, probeStatusLine(name, probe.StatusMisconfigured, err.Error()))
		return exitMisconfigured
	}

	fmt.Fprintln(out, probeStatusLine(name, result.Status, result.Description))

	if !result.IsHealthy() {
		return exitUnhealthy
	}
	return exitHealthy
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mittwald/identityprobe/pkg/cli"
	"github.com/mittwald/identityprobe/pkg/probe"
	"github.com/spf13/cobra"
)

var apiAddress string

func init() {
	statusCmd.Flags().StringVar(&apiAddress, "api-address", cli.DefaultAPIAddress, "address of a running probe server")
	statusCmd.Flags().BoolP("json", "j", false, "Print probe status as JSON")
	statusCmd.Flags().Bool("exit-with-status", false, "Exit with status code 0 if the probe is healthy, 1 if not")

	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:        "status [probe]",
	Args:       cobra.MaximumNArgs(1),
	ArgAliases: []string{"probe"},
	Short:      "Show probe status from a running probe server",
	Long:       "This command asks a running probe server to execute a probe and prints the outcome.\n\nWithout a probe name, the configured probes are listed.",

	RunE: func(cmd *cobra.Command, args []string) error {
		printJSON, _ := cmd.Flags().GetBool("json")
		exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status")

		code, err := runStatus(cli.NewAPIClient(apiAddress), args, printJSON, exitWithStatus, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if code != exitHealthy {
			os.Exit(code)
		}
		return nil
	},
}

// runStatus prints either the probe list or the status of a single probe and
// returns the exit code the command should terminate with.
func runStatus(apiClient *cli.APIClient, args []string, printJSON, exitWithStatus bool, out io.Writer) (int, error) {
	if len(args) == 0 {
		list := apiClient.ProbeList()
		if list.Err() != nil {
			return exitHealthy, fmt.Errorf("failed to list probes: %w", list.Err())
		}

		if printJSON {
			return exitHealthy, printPretty(out, list.Pretty)
		}
		for _, p := range list.Body.Probes {
			fmt.Fprintf(out, "%s (%s)\n", styleHighlight.Render(p.Name), p.Kind)
		}
		return exitHealthy, nil
	}

	resp := apiClient.ProbeStatus(args[0])
	if resp.Err() != nil {
		return exitHealthy, fmt.Errorf("failed to get status of probe %s: %w", args[0], resp.Err())
	}

	if printJSON {
		if err := printPretty(out, resp.Pretty); err != nil {
			return exitHealthy, err
		}
	} else {
		fmt.Fprintln(out, probeStatusLine(resp.Body.Name, resp.Body.Status, resp.Body.Description))
	}

	if exitWithStatus && resp.Body.Status != probe.StatusHealthy {
		return exitUnhealthy, nil
	}
	return exitHealthy, nil
}

func printPretty(out io.Writer, render func() (string, error)) error {
	rendered, err := render()
	if err != nil {
		return fmt.Errorf("failed to print output: %w", err)
	}
	fmt.Fprintln(out, rendered)
	return nil
}

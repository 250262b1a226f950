package cmd

import (
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configDir     string
	enableProfile bool
	logLevel      string
	logFormat     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "/etc/identityprobe.d", "set directory to where your .hcl-configs are located")
	rootCmd.PersistentFlags().BoolVar(&enableProfile, "profile", false, "enable pprof http server")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
}

var rootCmd = &cobra.Command{
	Use:     "identityprobe",
	Short:   "identityprobe - liveness probes for pod identity",
	Long:    "identityprobe checks that a pod can obtain a managed identity token and that the node identity agent is alive",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := configureLogging(logLevel, logFormat); err != nil {
			return err
		}

		if enableProfile {
			go func() {
				mux := http.NewServeMux()
				mux.HandleFunc("/debug/pprof/", pprof.Index)
				mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
				mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
				mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
				mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

				listener, err := net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					log.Errorf("pprof server failed to listen: %v", err)
					return
				}
				log.Infof("Starting pprof server on http://%s/debug/pprof/", listener.Addr().String())
				if err := http.Serve(listener, mux); err != nil {
					log.Errorf("pprof server error: %v", err)
				}
			}()
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Warn("Running 'identityprobe' without any arguments - defaulting to 'up'")
		up.Run(cmd, args)
	},
}

func configureLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("invalid log format %q", format)
	}

	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

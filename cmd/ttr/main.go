// ttr - Table Traceroute
//
// Simulates the path a packet takes across a network described by
// static per-device routing tables. No traffic is sent: every hop is
// computed from longest-prefix matching against the table.
//
//	ttr trace -f lab.yaml A 192.168.1.1 192.168.1.50
//	ttr check -f lab.yaml                  # validate a table file
//	ttr convert lab.csv lab.yaml           # convert between formats
//	ttr gen -n 5 lab.csv                   # generate a demo topology
//	ttr routes routes.csv                  # snapshot the local kernel table
//	ttr serve -f lab.yaml --listen :8080   # HTTP trace service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbjorklund/ttr/internal/config"
	"github.com/tbjorklund/ttr/internal/trace"
	"github.com/tbjorklund/ttr/internal/version"
)

var args config.Args

var rootCmd = &cobra.Command{
	Use:           "ttr",
	Short:         "Simulate packet paths across static routing tables",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `ttr resolves the path a packet would take between devices whose
forwarding tables are given as data (CSV, JSON or YAML), without
sending any traffic. Each hop is selected by longest-prefix match;
gateways are resolved through other devices' directly connected
networks.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := args.Validate(); err != nil {
			return err
		}
		logFile, err := config.SetupLogging(args)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		if logFile != nil {
			cobra.OnFinalize(func() { logFile.Close() })
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Println(version.FullVersion())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&args.TablePath, "table", "f", "", "Routing table file (.csv, .json, .yaml)")
	pf.UintVarP(&args.HopLimit, "max-hops", "m", trace.DefaultHopLimit, "Maximum hops before giving up")
	pf.StringVar(&args.HashAlgorithm, "hash-algorithm", config.DefaultHashAlgorithm, "Path hash algorithm: crc32 or sha256")
	pf.StringVarP(&args.Log, "log", "l", "", "Diagnostic log file (empty = no logging)")
	pf.StringVar(&args.LogLevel, "log-level", "error", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(traceCmd, checkCmd, convertCmd, genCmd, routesCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

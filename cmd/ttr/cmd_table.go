package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbjorklund/ttr/pkg/rtable"
	"github.com/tbjorklund/ttr/pkg/sysroute"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a routing table file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if args.TablePath == "" {
			return fmt.Errorf("a routing table file is required (use -f)")
		}
		tbl, err := rtable.LoadFile(args.TablePath)
		if err != nil {
			return err
		}
		errs := tbl.Validate()
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%v\n", e)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d problem(s) in %s", len(errs), args.TablePath)
		}
		fmt.Printf("%s: %d records across %d device(s)\n", args.TablePath, len(tbl), len(tbl.Devices()))
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Convert a routing table between CSV, JSON and YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, argv []string) error {
		tbl, err := rtable.LoadFile(argv[0])
		if err != nil {
			return err
		}
		if err := rtable.WriteFile(argv[1], tbl); err != nil {
			return err
		}
		fmt.Printf("wrote %d records to %s\n", len(tbl), argv[1])
		return nil
	},
}

var (
	genDevices uint
	genLoop    bool
)

var genCmd = &cobra.Command{
	Use:   "gen FILE",
	Short: "Generate a demo topology table",
	Long: `Generate a chain of devices forwarding a destination prefix hop to
hop (or, with --loop, a ring that never terminates) and write it to
FILE in the format implied by its extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		var tbl rtable.Table
		if genLoop {
			tbl = rtable.GenerateLoop(int(genDevices))
		} else {
			tbl = rtable.GenerateChain(int(genDevices))
		}
		if tbl == nil {
			return fmt.Errorf("cannot generate a topology with %d device(s)", genDevices)
		}
		if err := rtable.WriteFile(argv[0], tbl); err != nil {
			return err
		}
		fmt.Printf("wrote %d records (%d devices, destination %s) to %s\n",
			len(tbl), len(tbl.Devices()), rtable.GeneratedDestination(), argv[0])
		return nil
	},
}

var routesDevice string

var routesCmd = &cobra.Command{
	Use:   "routes [FILE]",
	Short: "Snapshot the local kernel routing table as a ttr table",
	Long: `Import the host's IPv4 routing table as records owned by a single
device (the local hostname by default) and write them to FILE, or to
stdout as CSV when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		device := routesDevice
		if device == "" {
			hostname, err := os.Hostname()
			if err != nil {
				return fmt.Errorf("determining hostname: %w", err)
			}
			device = hostname
		}
		tbl, err := sysroute.Import(device)
		if err != nil {
			return err
		}
		if len(argv) == 1 {
			if err := rtable.WriteFile(argv[0], tbl); err != nil {
				return err
			}
			fmt.Printf("wrote %d records to %s\n", len(tbl), argv[0])
			return nil
		}
		return rtable.Write(os.Stdout, rtable.FormatCSV, tbl)
	},
}

func init() {
	genCmd.Flags().UintVarP(&genDevices, "devices", "n", 3, "Number of devices to generate")
	genCmd.Flags().BoolVar(&genLoop, "loop", false, "Generate a ring topology instead of a chain")
	routesCmd.Flags().StringVarP(&routesDevice, "device", "d", "", "Device name for the imported records (default: hostname)")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbjorklund/ttr/internal/output"
	"github.com/tbjorklund/ttr/internal/trace"
	"github.com/tbjorklund/ttr/pkg/rtable"
)

var traceCmd = &cobra.Command{
	Use:   "trace DEVICE SOURCE DEST",
	Short: "Resolve the path from a device to a destination address",
	Long: `Resolve the hop-by-hop path a packet would take from DEVICE toward
DEST, reporting either the full path or a typed failure with the
partial path up to that point. SOURCE is carried through for
reporting; resolution is driven entirely by DEST.`,
	Args: cobra.ExactArgs(3),
	RunE: runTrace,
}

func init() {
	fl := traceCmd.Flags()
	fl.BoolVarP(&args.Json, "json", "J", false, "Write JSON output to stdout (disables the text report)")
	fl.StringVarP(&args.JsonFile, "json-file", "j", "", "Write JSON output to file (keeps the text report)")
	fl.StringVar(&args.CsvFile, "csv-file", "", "Write per-hop CSV to file")
}

func runTrace(cmd *cobra.Command, argv []string) error {
	if args.TablePath == "" {
		return fmt.Errorf("a routing table file is required (use -f)")
	}
	tbl, err := rtable.LoadFile(args.TablePath)
	if err != nil {
		return err
	}

	om, err := buildOutputs()
	if err != nil {
		return err
	}

	res := trace.Resolve(argv[0], argv[1], argv[2], tbl, trace.Options{
		HopLimit:      int(args.HopLimit),
		HashAlgorithm: args.HashAlgorithm,
	})
	om.TraceComplete(res)
	return om.Close()
}

// buildOutputs assembles the output fan-out from the output flags.
func buildOutputs() (*output.Manager, error) {
	var om output.Manager

	if args.Json || args.JsonFile != "" {
		jo, err := output.NewJSONOutput(args.JsonFile)
		if err != nil {
			return nil, fmt.Errorf("creating JSON output: %w", err)
		}
		om.Register(jo)
	}
	if !args.Json {
		om.Register(output.NewTextOutput())
	}
	if args.CsvFile != "" {
		co, err := output.NewCSVOutput(args.CsvFile)
		if err != nil {
			return nil, fmt.Errorf("creating CSV output: %w", err)
		}
		om.Register(co)
	}
	return &om, nil
}

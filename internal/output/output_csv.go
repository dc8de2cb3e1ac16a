package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/tbjorklund/ttr/internal/trace"
)

// CSVOutput writes one row per hop, suitable for spreadsheet import.
type CSVOutput struct {
	mu       sync.Mutex
	file     *os.File
	w        *csv.Writer
	toStdout bool
}

var csvHopHeader = []string{"hop", "device", "network", "prefix_len", "gateway", "next_device", "outcome"}

// NewCSVOutput writes to filename, or to stdout when filename is empty.
func NewCSVOutput(filename string) (*CSVOutput, error) {
	o := &CSVOutput{}
	if filename == "" {
		o.file = os.Stdout
		o.toStdout = true
	} else {
		f, err := os.Create(filename)
		if err != nil {
			return nil, err
		}
		o.file = f
	}
	o.w = csv.NewWriter(o.file)
	if err := o.w.Write(csvHopHeader); err != nil {
		if !o.toStdout {
			o.file.Close()
		}
		return nil, err
	}
	return o, nil
}

func (c *CSVOutput) TraceComplete(res *trace.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcome := "success"
	if !res.Success {
		outcome = string(res.FailureKind)
	}
	for i, hop := range res.Hops {
		_ = c.w.Write([]string{
			strconv.Itoa(i + 1),
			hop.Device,
			hop.Network,
			strconv.Itoa(hop.PrefixLen),
			hop.Gateway,
			hop.NextDevice,
			outcome,
		})
	}
	c.w.Flush()
}

func (c *CSVOutput) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		if !c.toStdout {
			c.file.Close()
		}
		return err
	}
	if c.toStdout {
		return nil
	}
	return c.file.Close()
}

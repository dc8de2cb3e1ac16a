package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tbjorklund/ttr/internal/trace"
)

type cellAlignment int

const (
	alignLeft cellAlignment = iota
	alignRight
)

// formatCell pads value to width. Values wider than the column are
// returned untouched rather than truncated.
func formatCell(value string, width int, alignment cellAlignment) string {
	if len(value) >= width {
		return value
	}
	pad := strings.Repeat(" ", width-len(value))
	if alignment == alignRight {
		return pad + value
	}
	return value + pad
}

// TextOutput renders a human-readable hop table to a terminal or pipe.
type TextOutput struct {
	w     io.Writer
	width int // terminal width, 0 when not a terminal
}

func NewTextOutput() *TextOutput {
	t := &TextOutput{w: os.Stdout}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			t.width = w
		}
	}
	return t
}

func (t *TextOutput) TraceComplete(res *trace.Result) {
	fmt.Fprint(t.w, renderTrace(res, t.width))
}

func (t *TextOutput) Close() error { return nil }

var textColumns = []struct {
	header    string
	alignment cellAlignment
}{
	{"HOP", alignRight},
	{"DEVICE", alignLeft},
	{"NETWORK", alignLeft},
	{"GATEWAY", alignLeft},
	{"NEXT", alignLeft},
}

// renderTrace builds the complete text report for one trace. maxWidth
// truncates lines for narrow terminals; 0 means unlimited.
func renderTrace(res *trace.Result, maxWidth int) string {
	var lines []string

	lines = append(lines,
		fmt.Sprintf("trace %s -> %s from device %s", res.SourceAddr, res.DestAddr, res.SourceDevice),
		"")

	if len(res.Hops) > 0 {
		lines = append(lines, hopTable(res.Hops)...)
		lines = append(lines, "")
	}

	if res.Success {
		lines = append(lines, fmt.Sprintf("reached %s in %d hop(s), path %s", res.DestAddr, len(res.Hops), res.PathHash))
	} else {
		lines = append(lines, fmt.Sprintf("trace failed (%s): %s", res.FailureKind, res.Reason))
		if len(res.Hops) > 0 {
			lines = append(lines, fmt.Sprintf("partial path of %d hop(s) shown above", len(res.Hops)))
		}
	}

	var b strings.Builder
	for _, line := range lines {
		if maxWidth > 0 && len(line) > maxWidth {
			line = line[:maxWidth]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// hopTable formats the hops as aligned rows under a header line.
func hopTable(hops []trace.Hop) []string {
	rows := make([][]string, 0, len(hops))
	for i, hop := range hops {
		next := hop.NextDevice
		if next == "" {
			next = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			hop.Device,
			hop.Prefix(),
			hop.Gateway,
			next,
		})
	}

	widths := make([]int, len(textColumns))
	for i, col := range textColumns {
		widths[i] = len(col.header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var lines []string
	header := make([]string, len(textColumns))
	for i, col := range textColumns {
		header[i] = formatCell(col.header, widths[i], col.alignment)
	}
	lines = append(lines, joinRow(header))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = formatCell(cell, widths[i], textColumns[i].alignment)
		}
		lines = append(lines, joinRow(cells))
	}
	return lines
}

func joinRow(cells []string) string {
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}

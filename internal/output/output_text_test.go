package output

import (
	"strings"
	"testing"

	"github.com/tbjorklund/ttr/internal/trace"
	"github.com/tbjorklund/ttr/pkg/rtable"
)

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		width     int
		alignment cellAlignment
		want      string
	}{
		{
			name:      "left align short",
			value:     "hello",
			width:     10,
			alignment: alignLeft,
			want:      "hello     ",
		},
		{
			name:      "right align short",
			value:     "world",
			width:     10,
			alignment: alignRight,
			want:      "     world",
		},
		{
			name:      "left align exact",
			value:     "exact",
			width:     5,
			alignment: alignLeft,
			want:      "exact",
		},
		{
			name:      "right align exact",
			value:     "exact",
			width:     5,
			alignment: alignRight,
			want:      "exact",
		},
		{
			name:      "left align wide",
			value:     "toolong",
			width:     3,
			alignment: alignLeft,
			want:      "toolong",
		},
		{
			name:      "right align wide",
			value:     "toolong",
			width:     3,
			alignment: alignRight,
			want:      "toolong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatCell(tt.value, tt.width, tt.alignment)
			if got != tt.want {
				t.Errorf("formatCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func successResult() *trace.Result {
	return &trace.Result{
		Success:      true,
		SourceDevice: "A",
		SourceAddr:   "192.168.1.1",
		DestAddr:     "192.168.1.50",
		Hops: []trace.Hop{
			{Device: "A", Network: "192.168.1.0", PrefixLen: 24, Gateway: "10.0.1.2", NextDevice: "B"},
			{Device: "B", Network: "192.168.1.0", PrefixLen: 24, Gateway: rtable.DirectlyConnected},
		},
		PathHash: "deadbeef",
	}
}

func TestRenderTraceSuccess(t *testing.T) {
	got := renderTrace(successResult(), 0)

	for _, want := range []string{
		"trace 192.168.1.1 -> 192.168.1.50 from device A",
		"HOP",
		"192.168.1.0/24",
		"10.0.1.2",
		rtable.DirectlyConnected,
		"reached 192.168.1.50 in 2 hop(s), path deadbeef",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("renderTrace() output missing %q:\n%s", want, got)
		}
	}

	// Terminal hop has no next device.
	lines := strings.Split(got, "\n")
	var lastHopLine string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "2") {
			lastHopLine = line
		}
	}
	if !strings.HasSuffix(strings.TrimRight(lastHopLine, " "), "-") {
		t.Errorf("terminal hop row %q should end with the - placeholder", lastHopLine)
	}
}

func TestRenderTraceFailure(t *testing.T) {
	res := &trace.Result{
		SourceDevice: "A",
		SourceAddr:   "10.0.1.1",
		DestAddr:     "172.16.0.1",
		FailureKind:  trace.FailureNoRoute,
		Reason:       `no route to 172.16.0.1 from device "A"`,
		PathHash:     "00000000",
	}
	got := renderTrace(res, 0)

	if !strings.Contains(got, "trace failed (no_route)") {
		t.Errorf("renderTrace() missing failure banner:\n%s", got)
	}
	if strings.Contains(got, "HOP") {
		t.Errorf("renderTrace() rendered a hop table for a trace with no hops:\n%s", got)
	}
}

func TestRenderTraceFailureWithPartialHops(t *testing.T) {
	res := successResult()
	res.Success = false
	res.FailureKind = trace.FailureRoutingLoop
	res.Reason = `routing loop: device "A" visited twice`
	got := renderTrace(res, 0)

	if !strings.Contains(got, "partial path of 2 hop(s)") {
		t.Errorf("renderTrace() did not mention the partial path:\n%s", got)
	}
}

func TestRenderTraceWidthTruncation(t *testing.T) {
	got := renderTrace(successResult(), 20)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 20 {
			t.Errorf("line longer than terminal width: %q", line)
		}
	}
}

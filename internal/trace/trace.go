// Package trace implements path resolution across static per-device
// routing tables. No traffic is ever sent: a trace walks the table
// hop by hop, picking the longest-prefix match at each device and
// resolving gateway addresses to their owning devices.
package trace

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tbjorklund/ttr/pkg/rtable"
)

// DefaultHopLimit is the ceiling on traversal length per resolution.
const DefaultHopLimit = 30

// FailureKind classifies why a trace did not reach its destination.
type FailureKind string

const (
	FailureInvalidInput      FailureKind = "invalid_input"
	FailureUnknownDevice     FailureKind = "unknown_device"
	FailureNoRoute           FailureKind = "no_route"
	FailureUnresolvedGateway FailureKind = "unresolved_gateway"
	FailureRoutingLoop       FailureKind = "routing_loop"
	FailureHopLimitExceeded  FailureKind = "hop_limit_exceeded"
)

// Hop is one step of a computed path. NextDevice is empty exactly when
// the hop is terminal, i.e. the matched route is directly connected.
type Hop struct {
	Device     string `json:"device"`
	Network    string `json:"network"`
	PrefixLen  int    `json:"prefix_len"`
	Gateway    string `json:"gateway"`
	NextDevice string `json:"next_device,omitempty"`
}

// Prefix returns the matched network in network/len notation.
func (h Hop) Prefix() string {
	return fmt.Sprintf("%s/%d", h.Network, h.PrefixLen)
}

// Result is the outcome of one resolution. On failure, Hops holds the
// partial path accumulated up to the failure point.
type Result struct {
	Success      bool        `json:"success"`
	FailureKind  FailureKind `json:"failure_kind,omitempty"`
	Reason       string      `json:"reason,omitempty"`
	SourceDevice string      `json:"source_device"`
	SourceAddr   string      `json:"source_address"`
	DestAddr     string      `json:"destination_address"`
	Hops         []Hop       `json:"hops"`
	PathHash     string      `json:"path_hash"`
	Timestamp    time.Time   `json:"timestamp"`
}

// Options tune a resolution. The zero value selects the defaults.
type Options struct {
	HopLimit      int    // 0 means DefaultHopLimit
	HashAlgorithm string // "crc32" (default) or "sha256"
}

// Resolve computes the hop sequence a packet would take from
// startDevice toward destAddr, or a typed failure. The source address
// does not participate in matching; it is carried through for
// reporting only. The table is treated as a read-only snapshot for the
// duration of the call.
func Resolve(startDevice, sourceAddr, destAddr string, tbl rtable.Table, opts Options) *Result {
	if opts.HopLimit <= 0 {
		opts.HopLimit = DefaultHopLimit
	}

	res := &Result{
		SourceDevice: startDevice,
		SourceAddr:   sourceAddr,
		DestAddr:     destAddr,
		Timestamp:    time.Now(),
	}

	switch {
	case startDevice == "" || sourceAddr == "" || destAddr == "":
		return res.fail(opts, FailureInvalidInput, "start device, source address and destination address are required")
	case len(tbl) == 0:
		return res.fail(opts, FailureInvalidInput, "routing table is empty")
	case !tbl.HasDevice(startDevice):
		return res.fail(opts, FailureUnknownDevice, fmt.Sprintf("device %q has no entries in the routing table", startDevice))
	}

	visited := make(map[string]bool, opts.HopLimit)
	current := startDevice

	for hop := 0; hop < opts.HopLimit; hop++ {
		if visited[current] {
			return res.fail(opts, FailureRoutingLoop, fmt.Sprintf("routing loop: device %q visited twice", current))
		}
		visited[current] = true

		candidates := tbl.Matches(current, destAddr)
		match, ok := rtable.MostSpecific(candidates)
		if !ok {
			return res.fail(opts, FailureNoRoute, fmt.Sprintf("no route to %s from device %q", destAddr, current))
		}

		if match.IsDirect() {
			res.Hops = append(res.Hops, Hop{
				Device:    current,
				Network:   match.Network,
				PrefixLen: match.PrefixLen,
				Gateway:   rtable.DirectlyConnected,
			})
			res.Success = true
			res.PathHash = pathHash(res.Hops, opts.HashAlgorithm)
			logrus.WithFields(logrus.Fields{
				"device": startDevice,
				"dest":   destAddr,
				"hops":   len(res.Hops),
			}).Debug("trace reached destination")
			return res
		}

		// The current device is excluded so a device never resolves a
		// gateway through its own connected networks. Longer cycles are
		// caught by the visited set above.
		next, ok := tbl.ResolveGateway(match.NextHop, current)
		if !ok {
			return res.fail(opts, FailureUnresolvedGateway, fmt.Sprintf("gateway %s is not directly connected to any device other than %q", match.NextHop, current))
		}

		res.Hops = append(res.Hops, Hop{
			Device:     current,
			Network:    match.Network,
			PrefixLen:  match.PrefixLen,
			Gateway:    match.NextHop,
			NextDevice: next,
		})
		current = next
	}

	return res.fail(opts, FailureHopLimitExceeded, fmt.Sprintf("no path found within %d hops", opts.HopLimit))
}

// fail finalizes res as a typed failure, keeping any hops accumulated
// so far so callers can render a partial trace.
func (r *Result) fail(opts Options, kind FailureKind, reason string) *Result {
	r.Success = false
	r.FailureKind = kind
	r.Reason = reason
	r.PathHash = pathHash(r.Hops, opts.HashAlgorithm)
	logrus.WithFields(logrus.Fields{
		"device": r.SourceDevice,
		"dest":   r.DestAddr,
		"kind":   kind,
	}).Debug("trace failed")
	return r
}

// Package rtable models static per-device forwarding tables and their
// serialized forms (CSV, JSON, YAML).
//
// A table is an ordered collection of records; insertion order is
// significant because equal-specificity matches are broken by
// first-encountered order.
package rtable

import (
	"fmt"
	"strings"

	"github.com/tbjorklund/ttr/pkg/cidr"
)

// DirectlyConnected is the canonical next-hop sentinel meaning the
// destination network is physically attached to the owning device.
// Matching is case-insensitive and tolerates hyphen/underscore spelling.
const DirectlyConnected = "directly connected"

// Record is one entry in a device's forwarding table.
type Record struct {
	Device    string `json:"device" yaml:"device"`
	Network   string `json:"network" yaml:"network"`
	PrefixLen int    `json:"prefix_len" yaml:"prefix_len"`
	NextHop   string `json:"next_hop" yaml:"next_hop"`
}

// IsDirect reports whether the record's next hop is the
// directly-connected sentinel.
func (r Record) IsDirect() bool {
	s := strings.ToLower(strings.TrimSpace(r.NextHop))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return s == DirectlyConnected
}

// Prefix returns the record's destination in network/len notation.
func (r Record) Prefix() string {
	return fmt.Sprintf("%s/%d", r.Network, r.PrefixLen)
}

// Table is an ordered collection of records, possibly spanning many devices.
type Table []Record

// Devices returns the distinct device names in first-seen order.
func (t Table) Devices() []string {
	seen := make(map[string]bool, len(t))
	var devices []string
	for _, r := range t {
		if !seen[r.Device] {
			seen[r.Device] = true
			devices = append(devices, r.Device)
		}
	}
	return devices
}

// HasDevice reports whether any record is owned by the named device.
func (t Table) HasDevice(name string) bool {
	for _, r := range t {
		if r.Device == name {
			return true
		}
	}
	return false
}

// Matches returns, in table order, the records owned by device whose
// destination prefix contains dest.
func (t Table) Matches(device, dest string) []Record {
	var matches []Record
	for _, r := range t {
		if r.Device == device && cidr.Contains(dest, r.Network, r.PrefixLen) {
			matches = append(matches, r)
		}
	}
	return matches
}

// MostSpecific returns the longest-prefix match among candidates.
// Ties are broken by first-encountered order, so the result is
// deterministic for a given table. ok is false for an empty slice.
func MostSpecific(candidates []Record) (best Record, ok bool) {
	for i, r := range candidates {
		if i == 0 || r.PrefixLen > best.PrefixLen {
			best = r
			ok = true
		}
	}
	return best, ok
}

// ResolveGateway finds the device that has direct reachability to the
// gateway address, skipping records owned by exclude. The exclusion
// keeps a device from routing to itself through its own connected
// networks.
func (t Table) ResolveGateway(gateway, exclude string) (string, bool) {
	for _, r := range t {
		if r.Device == exclude || !r.IsDirect() {
			continue
		}
		if cidr.Contains(gateway, r.Network, r.PrefixLen) {
			return r.Device, true
		}
	}
	return "", false
}

// Clone returns an independent copy of the table. Callers that mutate
// tables between resolutions should hand the resolver a clone so each
// run sees a consistent snapshot.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	c := make(Table, len(t))
	copy(c, t)
	return c
}

// Validate checks every record for structural problems and returns one
// error per offending record, not just the first.
func (t Table) Validate() []error {
	var errs []error
	for i, r := range t {
		switch {
		case strings.TrimSpace(r.Device) == "":
			errs = append(errs, fmt.Errorf("record %d: empty device name", i))
		case r.PrefixLen < 0 || r.PrefixLen > 32:
			errs = append(errs, fmt.Errorf("record %d (%s): prefix length %d out of range 0-32", i, r.Device, r.PrefixLen))
		}
		if _, err := cidr.ParseIPv4(r.Network); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%s): bad network address %q", i, r.Device, r.Network))
		}
		if !r.IsDirect() {
			if _, err := cidr.ParseIPv4(r.NextHop); err != nil {
				errs = append(errs, fmt.Errorf("record %d (%s): next hop %q is neither a gateway address nor %q", i, r.Device, r.NextHop, DirectlyConnected))
			}
		}
	}
	return errs
}

// Package cidr implements IPv4 prefix matching on dotted-quad strings.
// Addresses are compared as 32-bit unsigned integers; malformed input is
// reported as a non-match rather than an error, so callers can feed it
// untrusted routing-table fields directly.
package cidr

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIPv4 converts a dotted-quad address to its 32-bit integer form.
func ParseIPv4(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid IPv4 address %q", s)
	}
	var v uint32
	for _, part := range parts {
		octet, err := strconv.Atoi(part)
		if err != nil || octet < 0 || octet > 255 || part != strconv.Itoa(octet) {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		v = v<<8 | uint32(octet)
	}
	return v, nil
}

// Mask returns the netmask with the top prefixLen bits set.
// Out-of-range prefix lengths yield a zero mask.
func Mask(prefixLen int) uint32 {
	if prefixLen <= 0 || prefixLen > 32 {
		return 0
	}
	return ^uint32(0) << (32 - prefixLen)
}

// Contains reports whether address falls inside network/prefixLen.
// A prefix length of 0 matches every syntactically valid address.
// Malformed addresses or prefix lengths outside 0-32 never match.
func Contains(address, network string, prefixLen int) bool {
	if prefixLen < 0 || prefixLen > 32 {
		return false
	}
	addr, err := ParseIPv4(address)
	if err != nil {
		return false
	}
	net, err := ParseIPv4(network)
	if err != nil {
		return false
	}
	mask := Mask(prefixLen)
	return addr&mask == net&mask
}

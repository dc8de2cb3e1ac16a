//go:build linux

package sysroute

import (
	"fmt"
	"net"

	"github.com/jsimonetti/rtnetlink"
	"golang.org/x/sys/unix"

	"github.com/tbjorklund/ttr/pkg/rtable"
)

// fetchRouteMessages dumps the kernel RIB.
// Variable for mocking in tests.
var fetchRouteMessages = func() ([]rtnetlink.RouteMessage, error) {
	c, err := rtnetlink.Dial(nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Route.List()
}

// importTable converts the kernel main-table IPv4 unicast routes to
// records owned by deviceName. Falls back to plain default-gateway
// discovery if the netlink dump fails.
func importTable(deviceName string) (rtable.Table, error) {
	msgs, err := fetchRouteMessages()
	if err != nil {
		return fallbackDefault(deviceName)
	}
	t := convertRoutes(deviceName, msgs)
	if len(t) == 0 {
		return nil, fmt.Errorf("no IPv4 unicast routes in the main table")
	}
	return t, nil
}

func convertRoutes(deviceName string, msgs []rtnetlink.RouteMessage) rtable.Table {
	var t rtable.Table
	for _, m := range msgs {
		if m.Family != unix.AF_INET || m.Type != unix.RTN_UNICAST {
			continue
		}
		if m.Table != unix.RT_TABLE_MAIN && m.Attributes.Table != unix.RT_TABLE_MAIN {
			continue
		}

		network := "0.0.0.0"
		if dst := net.IP(m.Attributes.Dst).To4(); dst != nil {
			network = dst.String()
		} else if m.DstLength != 0 {
			// non-default route without an IPv4 destination
			continue
		}

		nextHop := rtable.DirectlyConnected
		if gw := net.IP(m.Attributes.Gateway).To4(); gw != nil {
			nextHop = gw.String()
		}

		t = append(t, rtable.Record{
			Device:    deviceName,
			Network:   network,
			PrefixLen: int(m.DstLength),
			NextHop:   nextHop,
		})
	}
	return t
}

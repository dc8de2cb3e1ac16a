// Package sysroute imports the host's IPv4 routing table as rtable
// records, so a simulated trace can start from the local machine's
// real forwarding state. It is ingestion tooling only; the resolver
// itself never touches the kernel.
package sysroute

import (
	"fmt"

	"github.com/jackpal/gateway"

	"github.com/tbjorklund/ttr/pkg/rtable"
)

// Import reads the host routing table and returns its IPv4 unicast
// routes as records owned by deviceName.
func Import(deviceName string) (rtable.Table, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("device name is required")
	}
	return importTable(deviceName)
}

// fallbackDefault builds a minimal one-route table from the discovered
// default gateway. Used where no netlink interface is available.
func fallbackDefault(deviceName string) (rtable.Table, error) {
	gw, err := gateway.DiscoverGateway()
	if err != nil {
		return nil, fmt.Errorf("discovering default gateway: %w", err)
	}
	gw4 := gw.To4()
	if gw4 == nil {
		return nil, fmt.Errorf("default gateway %s is not IPv4", gw)
	}
	return rtable.Table{
		{Device: deviceName, Network: "0.0.0.0", PrefixLen: 0, NextHop: gw4.String()},
	}, nil
}

//go:build !linux

package sysroute

import "github.com/tbjorklund/ttr/pkg/rtable"

// importTable falls back to default-gateway discovery on platforms
// without a netlink RIB dump.
func importTable(deviceName string) (rtable.Table, error) {
	return fallbackDefault(deviceName)
}

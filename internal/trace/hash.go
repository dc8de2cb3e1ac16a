package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"strings"
)

// pathHash computes a short fingerprint of the device sequence so
// callers can compare paths across runs without diffing hop lists.
func pathHash(hops []Hop, algorithm string) string {
	if len(hops) == 0 {
		switch algorithm {
		case "sha256":
			return strings.Repeat("0", 64)
		default:
			return "00000000"
		}
	}

	var pathBuilder strings.Builder
	for _, hop := range hops {
		pathBuilder.WriteString(hop.Device)
		pathBuilder.WriteString("|")
	}
	pathString := pathBuilder.String()

	switch algorithm {
	case "sha256":
		hash := sha256.Sum256([]byte(pathString))
		return hex.EncodeToString(hash[:])
	default:
		// crc32 and anything unrecognized
		hash := crc32.ChecksumIEEE([]byte(pathString))
		return fmt.Sprintf("%08x", hash)
	}
}

package config

import (
	"errors"
)

// DefaultHashAlgorithm fingerprints computed paths.
const DefaultHashAlgorithm = "crc32"

// Args holds the options shared by the trace-running commands.
type Args struct {
	TablePath string // routing table file (csv, json or yaml)

	// Resolution
	HopLimit      uint   // safety ceiling on traversal length
	HashAlgorithm string // path hash algorithm: crc32, sha256

	// Output
	Json     bool   // output json to stdout
	JsonFile string // output json to file while keeping the text report
	CsvFile  string // write per-hop csv to file

	// Logging
	Log      string // log file path, empty means no logging
	LogLevel string // log level: debug, info, warn, error
}

// Validate checks flag combinations the way individual flag parsing
// cannot.
func (a Args) Validate() error {
	switch {
	case a.Json && a.JsonFile != "":
		return errors.New("cannot use both --json and --json-file")
	case a.HashAlgorithm != "crc32" && a.HashAlgorithm != "sha256":
		return errors.New("hash algorithm must be either 'crc32' or 'sha256'")
	case a.HopLimit == 0 || a.HopLimit > 255:
		return errors.New("hop limit must be between 1 and 255")
	}
	return nil
}

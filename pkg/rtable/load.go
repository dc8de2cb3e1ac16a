package rtable

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a table serialization format.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ParseFormat converts a format name ("csv", "json", "yaml"/"yml") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatCSV, fmt.Errorf("unknown table format %q", s)
}

// FormatForPath derives the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return FormatCSV, fmt.Errorf("cannot determine table format for %q: no file extension", path)
	}
	return ParseFormat(ext)
}

// columns of the CSV representation, in order
var csvHeader = []string{"device", "network", "prefix_len", "next_hop"}

// Load reads a table in the given format.
func Load(r io.Reader, format Format) (Table, error) {
	switch format {
	case FormatCSV:
		return loadCSV(r)
	case FormatJSON:
		var t Table
		if err := json.NewDecoder(r).Decode(&t); err != nil {
			return nil, fmt.Errorf("parsing JSON table: %w", err)
		}
		return t, nil
	case FormatYAML:
		var t Table
		if err := yaml.NewDecoder(r).Decode(&t); err != nil {
			return nil, fmt.Errorf("parsing YAML table: %w", err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown table format %d", format)
}

// LoadFile reads a table from path, deriving the format from the
// file extension.
func LoadFile(path string) (Table, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table file: %w", err)
	}
	defer f.Close()

	t, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}

// loadCSV parses device,network,prefix_len,next_hop rows. A header row
// matching the column names is skipped if present.
func loadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	var t Table
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing CSV table: %w", err)
		}
		if line == 1 && isCSVHeader(row) {
			continue
		}
		prefixLen, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: prefix length %q is not a number", line, row[2])
		}
		t = append(t, Record{
			Device:    strings.TrimSpace(row[0]),
			Network:   strings.TrimSpace(row[1]),
			PrefixLen: prefixLen,
			NextHop:   strings.TrimSpace(row[3]),
		})
	}
	return t, nil
}

func isCSVHeader(row []string) bool {
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return false
		}
	}
	return true
}

package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tbjorklund/ttr/internal/trace"
)

func TestNewJSONOutput_Stdout(t *testing.T) {
	output, err := NewJSONOutput("")
	if err != nil {
		t.Fatalf("NewJSONOutput() error = %v", err)
	}
	defer output.Close()

	if !output.toStdout {
		t.Error("NewJSONOutput(\"\") should output to stdout")
	}
	if output.file != os.Stdout {
		t.Error("NewJSONOutput(\"\") file should be os.Stdout")
	}
}

func TestNewJSONOutput_File(t *testing.T) {
	tmpDir := t.TempDir()
	filename := filepath.Join(tmpDir, "test_output.json")

	output, err := NewJSONOutput(filename)
	if err != nil {
		t.Fatalf("NewJSONOutput() error = %v", err)
	}
	defer output.Close()

	if output.toStdout {
		t.Error("NewJSONOutput() with filename should not output to stdout")
	}
	if output.file == nil || output.file == os.Stdout {
		t.Error("NewJSONOutput() with filename should write to the named file")
	}
}

func TestJSONOutput_TraceComplete(t *testing.T) {
	tmpDir := t.TempDir()
	filename := filepath.Join(tmpDir, "test_run.json")

	output, err := NewJSONOutput(filename)
	if err != nil {
		t.Fatalf("NewJSONOutput() error = %v", err)
	}

	res := successResult()
	output.TraceComplete(res)
	if err := output.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	var decoded trace.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Success || len(decoded.Hops) != 2 || decoded.Hops[1].NextDevice != "" {
		t.Errorf("decoded result = %+v, want the original two-hop success", decoded)
	}
}

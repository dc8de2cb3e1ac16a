package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/tbjorklund/ttr/internal/trace"
)

// JSONOutput writes completed traces to a file or stdout
type JSONOutput struct {
	mu       sync.Mutex
	file     *os.File
	enc      *json.Encoder
	toStdout bool
}

// NewJSONOutput writes to filename, or to stdout when filename is empty.
func NewJSONOutput(filename string) (*JSONOutput, error) {
	if filename == "" {
		return &JSONOutput{
			file:     os.Stdout,
			enc:      json.NewEncoder(os.Stdout),
			toStdout: true,
		}, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &JSONOutput{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

func (j *JSONOutput) TraceComplete(res *trace.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()

	_ = j.enc.Encode(res)
}

func (j *JSONOutput) Close() error {
	if j.toStdout {
		return nil
	}
	return j.file.Close()
}

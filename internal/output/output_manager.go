package output

import "github.com/tbjorklund/ttr/internal/trace"

// Output interface for different output types
type Output interface {
	TraceComplete(res *trace.Result)
	Close() error
}

// Manager fans a completed trace out to every registered output.
type Manager struct {
	outputs []Output
}

func (m *Manager) Register(o Output) {
	m.outputs = append(m.outputs, o)
}

func (m *Manager) TraceComplete(res *trace.Result) {
	for _, o := range m.outputs {
		o.TraceComplete(res)
	}
}

func (m *Manager) Close() error {
	var firstErr error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

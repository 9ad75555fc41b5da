package ports

import "io"

// SinkPair holds the capture destinations for one replay job. Each job owns
// its pair exclusively; no job may read or write another job's sinks.
type SinkPair struct {
	// Stdout and Stderr receive the replay command's output streams.
	Stdout io.WriteCloser
	Stderr io.WriteCloser

	// StdoutPath and StderrPath locate the sinks for reporting.
	StdoutPath string
	StderrPath string
}

// Close closes both sinks, returning the first error encountered.
func (p SinkPair) Close() error {
	var first error
	if p.Stdout != nil {
		if err := p.Stdout.Close(); err != nil {
			first = err
		}
	}
	if p.Stderr != nil {
		if err := p.Stderr.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SinkFactory creates capture destinations for replay jobs. Sink placement
// goes through this port rather than the process working directory so it is
// configurable and testable without touching process-wide state.
type SinkFactory interface {
	// Create opens the sink pair for the given unit identifier with
	// overwrite semantics: each run starts its sinks empty. Destinations
	// are derived from the unit identifier and are unique per unit.
	Create(unitID string) (SinkPair, error)
}

package referee

import "context"

// Transport is the boundary the core drives but does not implement: it
// sends one framed JSON message and waits for one line back, bounded by
// ctx's deadline (§1, §5). internal/solverproc provides the subprocess
// realization; tests provide in-memory fakes.
type Transport interface {
	// Send marshals and writes msg as one line.
	Send(ctx context.Context, msg any) error

	// Receive reads the next line, or returns ctx.Err() if the deadline
	// passes first. The abandoned read (if any) must not be observable
	// after Receive returns an error (§5).
	Receive(ctx context.Context) ([]byte, error)

	// Close releases the transport's resources. Idempotent.
	Close() error

	// Name identifies the player for logging and the final summary.
	Name() string
}

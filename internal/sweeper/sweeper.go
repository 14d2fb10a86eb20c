package sweeper

import (
	"context"
)

// Sweeper is a long-running background loop such as the audit relay.
type Sweeper interface {
	// Start runs the loop until the context is canceled
	Start(ctx context.Context) error

	// Stop waits for in-flight work to finish or for ctx to expire
	Stop(ctx context.Context) error

	// Name identifies the loop in logs
	Name() string
}

package notifier

import (
	"context"

	"github.com/google/uuid"
)

// Notifier tells operators that a monitored server changed state. Calls are synchronous and may block
// on network I/O. A returned error is reported by the caller and never retried.
type Notifier interface {
	Down(ctx context.Context, id uuid.UUID, name string) error
	Up(ctx context.Context, id uuid.UUID, name string) error
}

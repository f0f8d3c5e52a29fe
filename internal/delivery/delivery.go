// Package delivery defines the contract every transport surface satisfies.
package delivery

import (
	"context"
)

// Delivery is a long-running transport (HTTP, gRPC). Serve blocks until the
// server stops; shutdown is driven by fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}

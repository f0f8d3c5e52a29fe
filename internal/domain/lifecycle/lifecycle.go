// Package lifecycle holds shared constants for process start and stop.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup checks and shutdown drains.
const DefaultTimeout = 10 * time.Second

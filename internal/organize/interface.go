package organize

import (
	"context"

	"mediasort/pkg/types"
)

// Organizer defines the interface for file organization operations
// This allows for dependency injection in tests and other parts of the application
type Organizer interface {
	// Process organizes a single file and reports the outcome
	Process(ctx context.Context, path string) types.ProcessingOutcome

	// Run organizes a batch of files sequentially
	Run(ctx context.Context, files []string) (types.BatchSummary, error)

	// IsDryRun reports whether operations are only simulated
	IsDryRun() bool
}

// Ensure Engine implements the Organizer interface
var _ Organizer = (*Engine)(nil)

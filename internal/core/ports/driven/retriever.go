package driven

import "context"

// Retriever is the external search component, treated as a black box.
// Only the ordered-output contract is assumed: case ids ranked most relevant
// first. Internal scoring is opaque to this core.
type Retriever interface {
	// Retrieve returns the top-k case ids for a natural-language query
	Retrieve(ctx context.Context, query string, k int) ([]string, error)

	// HealthCheck verifies the retriever is reachable
	HealthCheck(ctx context.Context) error
}

package orchestrator

import "errors"

// Sentinel errors for orchestrator-level query handling. These are the
// "user errors" of spec.md §7: bad query, unknown destination, mis-typed
// field. They never abort other in-flight queries.
var (
	// ErrMissingOrigin indicates the query document lacked origin_x/origin_y.
	ErrMissingOrigin = errors.New("orchestrator: origin_x and origin_y are required")

	// ErrDestinationRequired indicates the engine's policy forbids
	// destination-less (tree-only) queries and the query supplied none.
	ErrDestinationRequired = errors.New("orchestrator: destination_x and destination_y are required")

	// ErrNoVertexNearby indicates the resolver found no vertex for a coordinate pair.
	ErrNoVertexNearby = errors.New("orchestrator: no vertex near the given coordinates")
)

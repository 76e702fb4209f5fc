package search

import "errors"

// Sentinel errors for the search algorithm.
var (
	// ErrQueryTerminated indicates the TerminationModel fired mid-search.
	ErrQueryTerminated = errors.New("search: query terminated")

	// ErrNoPathExists is a user-visible, non-exceptional outcome: the
	// frontier emptied before the destination was settled. It carries a
	// populated tree, not a failure of the algorithm itself.
	ErrNoPathExists = errors.New("search: no path exists")
)

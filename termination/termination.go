// Package termination implements the TerminationModel family: a predicate
// polled between heap pops that decides whether the running search must
// abort. Polling granularity is one expansion step, per spec.md §5 — a
// deadline shorter than one expansion is not guaranteed to be honored
// exactly.
package termination

import "time"

// Status is the (elapsed_wall_time, iterations, frontier_size) triple the
// predicate is evaluated over.
type Status struct {
	Elapsed      time.Duration
	Iterations   int
	FrontierSize int
}

// Model decides whether a running search must abort.
type Model interface {
	ShouldTerminate(s Status) (bool, string)
}

// QueryRuntimeLimit aborts once elapsed wall-clock time exceeds Limit.
type QueryRuntimeLimit struct{ Limit time.Duration }

// ShouldTerminate implements Model.
func (q QueryRuntimeLimit) ShouldTerminate(s Status) (bool, string) {
	if s.Elapsed > q.Limit {
		return true, "query runtime limit exceeded"
	}

	return false, ""
}

// IterationsLimit aborts once the iteration counter exceeds Limit.
type IterationsLimit struct{ Limit int }

// ShouldTerminate implements Model.
func (i IterationsLimit) ShouldTerminate(s Status) (bool, string) {
	if s.Iterations > i.Limit {
		return true, "iteration limit exceeded"
	}

	return false, ""
}

// Combined aborts if any sub-model would abort (logical OR).
type Combined struct{ Models []Model }

// ShouldTerminate implements Model.
func (c Combined) ShouldTerminate(s Status) (bool, string) {
	for _, m := range c.Models {
		if stop, reason := m.ShouldTerminate(s); stop {
			return true, reason
		}
	}

	return false, ""
}

// Never never aborts. It is the default TerminationModel.
type Never struct{}

// ShouldTerminate implements Model.
func (Never) ShouldTerminate(s Status) (bool, string) { return false, "" }

// Canceled wraps an external cooperative-cancellation flag (e.g. a
// *bool or a function reading a context's Done channel) as a Model.
type Canceled struct{ IsCanceled func() bool }

// ShouldTerminate implements Model.
func (c Canceled) ShouldTerminate(s Status) (bool, string) {
	if c.IsCanceled != nil && c.IsCanceled() {
		return true, "canceled"
	}

	return false, ""
}

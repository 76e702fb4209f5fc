package termination_test

import (
	"testing"
	"time"

	"github.com/routeengine/compass/termination"
)

func TestCombined_LogicalOr(t *testing.T) {
	m := termination.Combined{Models: []termination.Model{
		termination.QueryRuntimeLimit{Limit: time.Hour},
		termination.IterationsLimit{Limit: 10},
	}}

	stop, _ := m.ShouldTerminate(termination.Status{Iterations: 11})
	if !stop {
		t.Fatalf("expected termination once iterations exceed limit")
	}

	stop, _ = m.ShouldTerminate(termination.Status{Iterations: 5})
	if stop {
		t.Fatalf("did not expect termination")
	}
}

func TestNever_NeverTerminates(t *testing.T) {
	stop, _ := (termination.Never{}).ShouldTerminate(termination.Status{Iterations: 1 << 30})
	if stop {
		t.Fatalf("Never must never terminate")
	}
}

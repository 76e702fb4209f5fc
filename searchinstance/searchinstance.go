// Package searchinstance bundles the immutable, shared-read handles a single
// query's search needs: the Graph plus the five query-scoped models. It is
// constructed once per query by the orchestrator and handed to the search
// algorithm.
package searchinstance

import (
	"github.com/routeengine/compass/access"
	"github.com/routeengine/compass/cost"
	"github.com/routeengine/compass/frontier"
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/termination"
	"github.com/routeengine/compass/traversal"
	"github.com/routeengine/compass/units"
)

// Instance is the per-query bundle handed to the search algorithm.
type Instance struct {
	Graph            *graph.Graph
	StateModel       *state.Model
	TraversalModel   traversal.Model
	AccessModel      access.Model
	CostModel        *cost.Model
	FrontierModel    frontier.Model
	TerminationModel termination.Model
}

// EstimateTraversalCost asks the traversal model for its admissible state
// estimate between src and dst, then asks the cost model for the
// corresponding cost contribution — this is the search algorithm's A*
// heuristic h(v). Admissibility depends entirely on the traversal model's
// EstimateTraversal being a true lower bound; an inadmissible estimate
// breaks the "admissible heuristic ⇒ optimality" property, it does not
// panic or error.
func (i *Instance) EstimateTraversalCost(src, dst traversal.VertexPosition, st state.Vector) (units.Cost, error) {
	estimated := st.Clone()
	if err := i.TraversalModel.EstimateTraversal(src, dst, estimated, i.StateModel); err != nil {
		return 0, err
	}

	return i.CostModel.CostEstimate(st, estimated)
}

// Position returns the traversal.VertexPosition for a graph vertex.
func Position(v graph.Vertex) traversal.VertexPosition {
	return traversal.VertexPosition{X: v.X, Y: v.Y}
}

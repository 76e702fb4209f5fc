package orchestrator

import (
	"errors"
	"strconv"

	"github.com/routeengine/compass/access"
	"github.com/routeengine/compass/cost"
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/registry"
	"github.com/routeengine/compass/search"
	"github.com/routeengine/compass/searchtree"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/traversal"

	"github.com/routeengine/compass/doc"
)

// stateDocument renders a state.Vector as a name->value map via its Model,
// so callers never see raw slot indices.
func stateDocument(sm *state.Model, v state.Vector) map[string]any {
	features := sm.Features()
	out := make(map[string]any, len(features))
	for _, f := range features {
		val, err := sm.GetValue(v, f.Name)
		if err != nil {
			continue
		}
		out[f.Name] = val
	}

	return out
}

// edgeTraversalDocument renders one searchtree.EdgeTraversal as the
// "edge record with accumulated state" spec.md §6 describes.
func edgeTraversalDocument(et searchtree.EdgeTraversal, sm *state.Model) map[string]any {
	return map[string]any{
		"edge_id":        int(et.EdgeId),
		"access_cost":    float64(et.AccessCost.Value()),
		"traversal_cost": float64(et.TraversalCost.Value()),
		"state":          stateDocument(sm, et.ResultState),
	}
}

// resultDocument augments the input query document with route, tree, and a
// path_exists flag, per spec.md §6's output-document shape. This covers both
// outcomes of a completed search: result.PathExists is false exactly when
// spec.md §7's NoPathExists case applies (destination supplied but never
// settled), in which case result.Route is empty but result.Tree still
// carries whatever the search settled — never an "error" field.
func resultDocument(query doc.Document, result *search.Result, sm *state.Model) doc.Document {
	out := query

	route := make([]any, len(result.Route))
	for i, et := range result.Route {
		route[i] = edgeTraversalDocument(et, sm)
	}
	out = out.With("route", route)
	out = out.With("tree", treeDocument(result.Tree, sm))
	out = out.With("path_exists", result.PathExists)

	return out
}

// treeDocument renders a searchtree.Tree as the vertex-id-keyed map spec.md
// §6 describes.
func treeDocument(tree searchtree.Tree, sm *state.Model) map[string]any {
	out := make(map[string]any, len(tree))
	for v, branch := range tree {
		rec := edgeTraversalDocument(branch.EdgeTraversal, sm)
		rec["terminal_vertex"] = int(branch.TerminalVertex)
		out[strconv.Itoa(int(v))] = rec
	}

	return out
}

// errorDocument replaces the query document with spec.md §6's error shape:
// a single "error" field carrying a machine-readable kind and message.
func errorDocument(err error) doc.Document {
	return doc.Document{
		"error": map[string]any{
			"kind":    errorKind(err),
			"message": err.Error(),
		},
	}
}

// errorKind classifies err into the error taxonomy named in spec.md §6:
// GraphError, StateModelError, TraversalModelError, AccessModelError,
// FrontierModelError, CostError, SearchError, plus a UserError kind for
// orchestrator-level input problems the taxonomy itself does not name.
func errorKind(err error) string {
	switch {
	case errors.Is(err, graph.ErrVertexNotFound),
		errors.Is(err, graph.ErrEdgeNotFound),
		errors.Is(err, graph.ErrDanglingEdge),
		errors.Is(err, graph.ErrAdjacencyVertexMissing):
		return "GraphError"

	case errors.Is(err, state.ErrDuplicateFeature),
		errors.Is(err, state.ErrFeatureNotFound),
		errors.Is(err, state.ErrIndexOutOfBounds):
		return "StateModelError"

	case errors.Is(err, traversal.ErrPredictionFailed),
		errors.Is(err, traversal.ErrMissingStateFeature):
		return "TraversalModelError"

	case errors.Is(err, access.ErrRestricted):
		return "AccessModelError"

	case errors.Is(err, cost.ErrStateIndexOutOfBounds),
		errors.Is(err, cost.ErrRateEvaluationFailed):
		return "CostError"

	case errors.Is(err, search.ErrQueryTerminated),
		errors.Is(err, search.ErrNoPathExists):
		return "SearchError"

	case errors.Is(err, registry.ErrUnknownModelType),
		errors.Is(err, registry.ErrDuplicateModelType),
		errors.Is(err, ErrMissingOrigin),
		errors.Is(err, ErrDestinationRequired),
		errors.Is(err, ErrNoVertexNearby):
		return "UserError"

	default:
		return "InternalError"
	}
}

// Package orchestrator implements the per-query orchestrator (C12): it
// binds an incoming query document to a SearchInstance, runs the search
// algorithm, reconstructs the route, and renders the result back to a
// document — dispatching the work for a batch of queries over a bounded
// worker pool (C14).
//
// Grounded on the OCM Kubernetes controller's resolution/workers.go bounded
// worker pool (options struct with defaulting, logr logging), generalized
// from its channel/fan-out shape to a semaphore-gated goroutine-per-query
// dispatch, since a query here is a single CPU-bound computation with no
// caching or deduplication step to fan results back through.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/semaphore"

	"github.com/routeengine/compass/access"
	"github.com/routeengine/compass/cost"
	"github.com/routeengine/compass/doc"
	"github.com/routeengine/compass/frontier"
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/registry"
	"github.com/routeengine/compass/search"
	"github.com/routeengine/compass/searchinstance"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/termination"
	"github.com/routeengine/compass/traversal"
)

// EngineOptions configures an Engine. Model-family Services are produced
// ahead of time by registry.Registry.Build against the process-start
// configuration (config.EngineConfig) — the Engine itself only invokes them
// per query with that query's parameter section.
type EngineOptions struct {
	Graph      *graph.Graph
	Resolver   VertexResolver
	StateModel *state.Model

	Traversal   registry.Service[traversal.Model]
	Access      registry.Service[access.Model]
	Frontier    registry.Service[frontier.Model]
	Cost        registry.Service[*cost.Model]
	Termination registry.Service[termination.Model]

	// RequireDestination rejects tree-only (destination-less) queries,
	// mirroring spec.md §4.11's "bail on DestinationsRequired if policy
	// forbids destination-less queries".
	RequireDestination bool

	// Concurrency bounds in-flight queries. Defaults to GOMAXPROCS.
	Concurrency int64

	Logger logr.Logger
}

// Engine dispatches a batch of query documents to the search algorithm over
// a bounded worker pool, one worker per query, no suspension inside a
// query — spec.md §5's scheduling model.
type Engine struct {
	opts EngineOptions
}

// NewEngine returns an Engine, defaulting Concurrency and Logger the way
// the teacher's worker pool constructor does.
func NewEngine(opts EngineOptions) *Engine {
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = int64(runtime.GOMAXPROCS(0))
	}

	return &Engine{opts: opts}
}

// Run dispatches queries over the bounded worker pool and returns one
// result document per query, in input order. A query that fails to acquire
// a worker slot because ctx was canceled gets an error document instead of
// being silently dropped; queries that already started run to completion.
func (e *Engine) Run(ctx context.Context, queries []doc.Document) []doc.Document {
	sem := semaphore.NewWeighted(e.opts.Concurrency)
	results := make([]doc.Document, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = errorDocument(fmt.Errorf("orchestrator: %w", err))
			continue
		}

		wg.Add(1)
		go func(i int, q doc.Document) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = e.runQuery(ctx, q)
		}(i, q)
	}
	wg.Wait()

	return results
}

// runQuery is one worker's unit of work: the full query → SearchInstance →
// algorithm → result pipeline for a single document.
func (e *Engine) runQuery(ctx context.Context, query doc.Document) doc.Document {
	start := time.Now()
	logger := e.opts.Logger

	origin, destination, err := e.resolveEndpoints(query)
	if err != nil {
		logger.V(1).Info("query rejected", "reason", err.Error())
		return errorDocument(err)
	}

	inst, err := e.buildInstance(query)
	if err != nil {
		logger.Error(err, "failed to build search instance")
		return errorDocument(err)
	}

	searchStart := time.Now()
	result, err := search.Run(inst, origin, destination)
	searchElapsed := time.Since(searchStart)

	if err != nil && !errors.Is(err, search.ErrNoPathExists) {
		logger.Error(err, "search failed", "origin", origin)
		return errorDocument(err)
	}

	routeStart := time.Now()
	out := resultDocument(query, result, e.opts.StateModel)
	routeElapsed := time.Since(routeStart)

	return withTimings(out, start, searchElapsed, routeElapsed)
}

// resolveEndpoints extracts and resolves origin/destination coordinates,
// per spec.md §4.11 step 1 ("resolve origin/destination via the
// collaborator map-matching component").
func (e *Engine) resolveEndpoints(query doc.Document) (graph.VertexId, *graph.VertexId, error) {
	originX, ok := query.Float64("origin_x")
	if !ok {
		return 0, nil, fmt.Errorf("%w: origin_x", ErrMissingOrigin)
	}
	originY, ok := query.Float64("origin_y")
	if !ok {
		return 0, nil, fmt.Errorf("%w: origin_y", ErrMissingOrigin)
	}

	origin, err := e.opts.Resolver.Resolve(originX, originY)
	if err != nil {
		return 0, nil, err
	}

	destX, hasX := query.Float64("destination_x")
	destY, hasY := query.Float64("destination_y")

	switch {
	case hasX && hasY:
		dest, err := e.opts.Resolver.Resolve(destX, destY)
		if err != nil {
			return 0, nil, err
		}

		return origin, &dest, nil
	case e.opts.RequireDestination:
		return 0, nil, ErrDestinationRequired
	default:
		return origin, nil, nil
	}
}

// buildInstance materializes this query's per-query models via the
// Services built from process-start configuration, per spec.md §4.11
// step 2: "for each model family, call service.build(query)".
func (e *Engine) buildInstance(query doc.Document) (*searchinstance.Instance, error) {
	traversalParams, _ := query.Section("traversal")
	tm, err := e.opts.Traversal(traversalParams)
	if err != nil {
		return nil, err
	}

	accessParams, _ := query.Section("access")
	am, err := e.opts.Access(accessParams)
	if err != nil {
		return nil, err
	}

	frontierParams, _ := query.Section("frontier")
	fm, err := e.opts.Frontier(frontierParams)
	if err != nil {
		return nil, err
	}

	costParams, _ := query.Section("cost")
	cm, err := e.opts.Cost(costParams)
	if err != nil {
		return nil, err
	}

	terminationParams, _ := query.Section("termination")
	tem, err := e.opts.Termination(terminationParams)
	if err != nil {
		return nil, err
	}

	return &searchinstance.Instance{
		Graph:            e.opts.Graph,
		StateModel:       e.opts.StateModel,
		TraversalModel:   tm,
		AccessModel:      am,
		CostModel:        cm,
		FrontierModel:    fm,
		TerminationModel: tem,
	}, nil
}

// withTimings stamps the four timing fields spec.md §6 names onto out.
func withTimings(out doc.Document, start time.Time, searchElapsed, routeElapsed time.Duration) doc.Document {
	out = out.With("search_executed_time", start.UTC().Format(time.RFC3339Nano))
	out = out.With("search_runtime_ms", float64(searchElapsed.Microseconds())/1000)
	out = out.With("route_runtime_ms", float64(routeElapsed.Microseconds())/1000)
	out = out.With("total_runtime_ms", float64(time.Since(start).Microseconds())/1000)

	return out
}

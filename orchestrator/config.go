package orchestrator

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/routeengine/compass/access"
	"github.com/routeengine/compass/config"
	"github.com/routeengine/compass/cost"
	"github.com/routeengine/compass/doc"
	"github.com/routeengine/compass/frontier"
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/registry"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/termination"
	"github.com/routeengine/compass/traversal"
)

// Registries bundles the per-model-family registries NewEngineFromConfig
// resolves config.EngineConfig's ModelSections against, one registry per
// model family named in spec.md §6's configuration document shape.
type Registries struct {
	Traversal   *registry.Registry[traversal.Model]
	Access      *registry.Registry[access.Model]
	Frontier    *registry.Registry[frontier.Model]
	Cost        *registry.Registry[*cost.Model]
	Termination *registry.Registry[termination.Model]
}

// NewEngineFromConfig builds an Engine from a config.EngineConfig: each
// section's Type tag selects a Builder from regs, and its Params become that
// Builder's one-time configuration. The shared state.Model schema is derived
// once from the configured traversal model's declared StateFeatures, via a
// probe call to its Service with an empty query document — configuration
// fixes the model *type*, and only per-query *params* vary thereafter, so
// one schema legitimately serves every query this Engine runs (see DESIGN.md).
//
// cost.Model.StateModel can only be known once that schema is resolved, an
// ordering the registry's generic Builder/Service contract has no slot for,
// so NewEngineFromConfig decorates the cost Service to inject it into every
// per-query *cost.Model it produces, rather than threading the schema
// through Registry.Build itself.
func NewEngineFromConfig(cfg config.EngineConfig, g *graph.Graph, resolver VertexResolver, regs Registries, logger logr.Logger) (*Engine, error) {
	traversalSvc, err := regs.Traversal.Build(cfg.Traversal.Type, cfg.Traversal.Params)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: traversal model %q: %w", cfg.Traversal.Type, err)
	}

	probe, err := traversalSvc(doc.Document{})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolving state schema from traversal model %q: %w", cfg.Traversal.Type, err)
	}
	sm, err := state.Empty().Extend(probe.StateFeatures()...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: building state model: %w", err)
	}

	accessSvc, err := regs.Access.Build(cfg.Access.Type, cfg.Access.Params)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: access model %q: %w", cfg.Access.Type, err)
	}

	frontierSvc, err := regs.Frontier.Build(cfg.Frontier.Type, cfg.Frontier.Params)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: frontier model %q: %w", cfg.Frontier.Type, err)
	}

	costSvc, err := regs.Cost.Build(cfg.Cost.Type, cfg.Cost.Params)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: cost model %q: %w", cfg.Cost.Type, err)
	}

	terminationSvc, err := regs.Termination.Build(cfg.Termination.Type, cfg.Termination.Params)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: termination model %q: %w", cfg.Termination.Type, err)
	}

	wrappedCost := registry.Service[*cost.Model](func(params doc.Document) (*cost.Model, error) {
		cm, err := costSvc(params)
		if err != nil {
			return nil, err
		}
		cm.StateModel = sm

		return cm, nil
	})

	return NewEngine(EngineOptions{
		Graph:       g,
		Resolver:    resolver,
		StateModel:  sm,
		Traversal:   traversalSvc,
		Access:      accessSvc,
		Frontier:    frontierSvc,
		Cost:        wrappedCost,
		Termination: terminationSvc,
		Logger:      logger,
	}), nil
}

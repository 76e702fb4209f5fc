// Package config defines the in-process configuration shape described in
// spec.md §6: a hierarchical document with a section per model family plus
// graph source locations. Decoding a file format (JSON/YAML/TOML) into this
// struct is the caller's job — out of scope per spec.md §1 — but the struct
// itself, and the parameter bags it carries through to each ModelService
// Builder, are in scope.
package config

import "github.com/routeengine/compass/doc"

// ModelSection names a registered model type (the registry.Registry tag)
// plus its builder-time parameters.
type ModelSection struct {
	Type   string       `json:"type"`
	Params doc.Document `json:"params,omitempty"`
}

// GraphSection names the vertex/edge table sources. File-format parsing of
// these locations is a loader collaborator's job (spec.md §6); this struct
// only carries the locations through.
type GraphSection struct {
	VertexFile string `json:"vertex_file"`
	EdgeFile   string `json:"edge_file"`
}

// EngineConfig is the one-time, process-start configuration document.
type EngineConfig struct {
	Graph       GraphSection   `json:"graph"`
	Traversal   ModelSection   `json:"traversal"`
	Access      ModelSection   `json:"access"`
	Frontier    ModelSection   `json:"frontier"`
	Cost        ModelSection   `json:"cost"`
	Termination ModelSection   `json:"termination"`
	Plugins     []ModelSection `json:"plugins,omitempty"`
}

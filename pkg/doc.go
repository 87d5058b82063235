// Package pkg provides the core libraries for Slidegrid slide layout.
//
// # Overview
//
// Slidegrid positions semantic content containers on a fixed 160x90 grid for
// presentation slides. The pkg directory is organized into four main areas:
//
//  1. [grid] - Domain types (the grid, containers, engine configuration)
//  2. [layout] - Layout engine (pattern selection, assignment, validation,
//     balance scoring, the refinement loop)
//  3. [slide] - Serialization formats for inputs and layouts
//  4. [pipeline] - Orchestration (validate → refine → export, with caching)
//
// Supporting packages: [cache] for pluggable result caching, [errors] for
// structured error codes, [observability] for instrumentation hooks, and
// [buildinfo] for version metadata.
//
// # Architecture
//
// The typical data flow through Slidegrid:
//
//	Slide Input (containers, flow, groupings)
//	         ↓
//	    [layout/pattern] package (select a design pattern)
//	         ↓
//	    [layout/assign] package (place containers into zones)
//	         ↓
//	    [layout/validate] + [layout/balance] (check the proposal)
//	         ↓
//	    [layout/refine] package (iterate until accepted)
//	         ↓
//	    Layout JSON output
//
// # Quick Start
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Layout(ctx, pipeline.Options{Input: input})
//
// Or drive the engine directly:
//
//	controller := refine.New(nil)
//	res := controller.Run(ctx, refine.Request{
//	    SlideID:    "intro-1",
//	    Containers: containers,
//	    Flow:       grid.FlowLinear,
//	    Config:     grid.DefaultConfig(),
//	})
package pkg

// Package pipeline orchestrates one deterministic election run:
// per-unit tabulation and allocation in canonical unit order, the
// legitimacy gates once per run, and frontier mapping when — and only
// when — the gates pass.
//
// The engine owns all data top-down: stages borrow inputs for one call
// and hand back fresh, immutable outputs that are assembled into the
// RunRecord. Canonical serialization and content-hash identifiers are
// the caller's concern; the engine computes neither.
//
// Concurrency model: tabulation is embarrassingly parallel and fans out
// over a bounded errgroup, with results collected back into canonical
// unit order before the next stage — parallelism is never observable in
// the output. Allocation may consume the shared tie stream, whose draw
// order is part of the audited contract, so it always runs
// sequentially, unit by unit, in ascending unit-id order.
//
// The parameter snapshot (Params) is a plain YAML-decodable struct with
// closed-set string selectors for ballot family, allocation method, tie
// policy and frontier mode; Validate resolves them to the typed enums
// of the stage packages.
//
// Logging goes through an injected *zap.Logger (zap.NewNop by
// default): stage progression, tie draws and gate verdicts, never
// decision-relevant state of its own.
package pipeline

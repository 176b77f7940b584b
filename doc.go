// Package scrutiny is a deterministic election-computation library — from
// raw per-unit ballot observations to seats, legitimacy gates and frontier
// maps, byte-identical on every platform.
//
// 🚀 What is scrutiny?
//
//	A pure-Go toolkit that brings together the computational heart of an
//	election run:
//		• Tabulation: plurality, approval, score, instant-runoff, Schulze
//		• Allocation: winner-take-all, D'Hondt, Sainte-Laguë,
//		  largest-remainder (Hare/Droop/Imperiali), mixed-member top-up
//		• Gates: quorum, majority, double-majority, symmetry
//		• Frontier: support bands, graph contiguity, mediation & enclaves
//		• Tie substrate: canonical ordering plus a seeded, audited stream
//
// ✨ Why choose scrutiny?
//
//   - Exact arithmetic – integer and cross-multiplied rational comparisons
//     only; no floating point in any decision path
//   - Reproducible – same inputs and seed ⇒ identical output, independent
//     of map iteration order, platform or process
//   - Auditable – every tie draw is logged with its seed and word index
//   - Structured errors – sentinel errors everywhere, no panics on
//     well-formed input
//
// Everything is organized under flat subpackages:
//
//	core/     — identifiers, option/unit registry, turnout & score types
//	tie/      — canonical ordering, seeded tie stream, argmax with ties
//	tabulate/ — five ballot families → canonical per-option scores
//	allocate/ — five seat/power allocation methods
//	gates/    — national and regional legitimacy gates
//	frontier/ — band classification and contiguity analysis
//	pipeline/ — the run orchestrator, parameter snapshot and run record
//
// Dive into DESIGN.md for the full architecture notes.
//
//	go get github.com/veralin/scrutiny
package scrutiny

// Package gates evaluates the national and regional legitimacy gates:
// quorum, majority, double-majority and symmetry, as an ordered
// conjunction over exact integer percentage comparisons
// (100·numerator ≥ threshold·denominator — never floating point).
//
// Verdict semantics:
//
//   - Quorum: ballots cast over the eligible roll meets the global
//     quorum. A per-unit quorum pass-set is computed for reporting only
//     and never affects the verdict.
//   - Majority: support for change over VALID ballots meets the
//     national majority threshold. The denominator is fixed by design;
//     no blank-ballot toggle reaches it.
//   - Double-majority (when enabled): at least ⌈R/2⌉ of the R regions
//     with nonzero valid ballots meet the regional threshold. Zero such
//     regions pass vacuously — the gate never blocks on absent regional
//     data. (A policy choice, not a mathematical necessity.)
//   - Symmetry (when enabled): passes unless the parameter snapshot
//     flags that declared symmetry exceptions actually break symmetry;
//     that sub-policy is external configuration, not computed here.
//
// Gate inputs never error: missing data degrades to well-defined
// zero/neutral values. Frontier mapping must not run unless Pass is
// true.
package gates

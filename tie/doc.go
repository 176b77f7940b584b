// Package tie is the deterministic tie-resolution substrate shared by
// tabulation and allocation: canonical argmax-with-ties, exact rational
// comparison, and a seeded, audited pseudorandom stream.
//
// 🚀 What lives here?
//
//	• Stream   — a counter-based SplitMix64 word stream, seeded once per
//	             run from an explicit non-negative integer (never OS
//	             entropy), with unbiased Uintn, Fisher–Yates Shuffle and
//	             a consumed-word counter for audit logs
//	• Resolver — picks exactly one winner from a tied candidate set under
//	             the configured Policy, emitting an Event for the audit
//	             trail
//	• CompareRatios / ArgmaxTies — the exact comparison helpers every
//	             seat-by-seat allocation round is built on
//
// Policy precedence is fixed: StatusQuo falls through to deterministic
// order when the status-quo option is not among the candidates;
// DeterministicOrder picks the smallest (RankIndex, OptionID); Random
// draws a uniform index from the shared stream.
//
// Quotient comparisons (v/(s+1), v/(2s+1), thresholds) are done by
// 128-bit cross-multiplication — never by division — so results are
// exact and overflow-free for any int64 inputs.
//
// Determinism contract: the stream is one shared, sequentially consumed
// generator; its draw order is part of the audited output. Consumers
// must resolve ties in a fixed, reproducible order.
//
// Errors:
//
//	ErrBadSeed       - negative seed supplied to NewStream.
//	ErrNoCandidates  - Pick called with an empty candidate set (caller bug).
//	ErrMissingStream - Random policy configured without a stream.
package tie

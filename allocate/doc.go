// Package allocate converts one unit's canonical score map plus a seat
// magnitude into a per-option seat (or 0–100 power) distribution, for
// five methods:
//
//	• WinnerTakeAll    — magnitude 1 only; winner gets 100 power
//	• HighestAverages  — D'Hondt (v/(s+1)) or Sainte-Laguë (v/(2s+1)),
//	                     seats awarded one round at a time
//	• LargestRemainder — Hare, Droop or Imperiali quota with the
//	                     remainder ranking (remainder, raw score,
//	                     canonical order)
//	• MMP              — mixed-member proportional top-up with the
//	                     allow-overhang / compensate-others / add-seats
//	                     policies
//
// Shared mechanics:
//
//   - the entry-threshold filter retains option o iff
//     100·score(o) ≥ threshold·T over the natural total T, compared in
//     128 bits — raising the threshold never widens the eligible set
//   - every quotient comparison is exact cross-multiplication
//     (tie.CompareRatios); division never appears in a decision path
//   - exact ties surface through the tie substrate and are logged; the
//     HadTie flag and the Event list ride along in the Result
//   - Σ seats always equals the requested magnitude exactly (Σ power =
//     100 for winner-take-all)
//
// Errors:
//
//	ErrNoEligibleOptions  - zero total or nothing clears the threshold
//	                        while magnitude > 0.
//	ErrRequiresMagnitude1 - winner-take-all with magnitude ≠ 1.
//	ErrNegativeMagnitude  - a negative seat magnitude.
//	ErrBadThreshold       - threshold outside 0..100.
//	ErrBadTopUpShare      - MMP top-up share outside 0..99.
//	ErrNegativeSeats      - a negative local-seat count fed to MMP.
package allocate

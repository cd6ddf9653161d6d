// Package dtw computes Dynamic Time Warping distances between 2D point paths, with the
// pruning needed to scan a whole dictionary per gesture.
//
// What is DTW?
//
//	DTW aligns two sequences by warping their index axes so that every point of one is
//	matched to one or more points of the other, monotonically, from first to last.
//	The distance is the minimal sum of Euclidean point distances over all alignments,
//	so the same word traced faster or slower scores as similar.
//
// Recurrence (0-indexed, cell (i,j) aligns a[0..i] with b[0..j]):
//
//	D(0,0) = d(a0, b0)
//	D(i,j) = d(ai, bj) + min(D(i-1,j), D(i,j-1), D(i-1,j-1))
//	result = D(n-1, m-1)
//
// Window:
//
//	A Sakoe–Chiba band restricts the DP to |i-j| <= w. Cells outside the band are +Inf.
//	The band is widened to |n-m| when the lengths differ by more than w, so the end cell
//	(n-1, m-1) stays reachable and every pair of paths has a finite distance.
//
// Pruning:
//
//   - LowerBound: Kim's endpoint bound d(a0,b0) + d(a_last,b_last). Every warping path
//     starts in (0,0) and ends in (n-1,m-1), so the bound never exceeds the DTW distance.
//   - Bounded   : abandons as soon as a whole DP row exceeds the best-so-far (bsf).
//   - Cumulative: UCR-suite style: each row's minimum plus a suffix sum of per-row lower
//     bounds (point-to-envelope distances) is compared with bsf.
//
// Abandoned computations return +Inf, which callers read as "not better than bsf".
// Abandoning is strict: a candidate whose distance equals bsf is always computed in full.
//
// Strategy bundles a pre-filter and a bounded distance so the recognizer can swap them:
//
//	s := dtw.Combined{}
//	if !s.Skip(queryEnds, candEnds, bsf) {
//		d := s.Distance(query, cand, w, bsf)
//	}
//
// Complexity per candidate: O(n·w) time, O(m) memory.
package dtw

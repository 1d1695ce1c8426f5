// Package matrix provides the small dense linear-algebra kernel used to hold
// scaling matrices and linear constraint systems.
//
// What & Why:
//
//	Dense is a row-major float64 matrix with bounds-checked At/Set. The
//	optimisation driver only ever needs diagonal scaling matrices, constraint
//	matrices A (A·x ≥ b) and the occasional square inverse, so the surface is
//	kept to construction, element access, matrix-vector products and the
//	LU-based inverse in matrix/ops.
//
// Complexity:
//
//	Rows(), Cols(), At() and Set() run in O(1).
//	MatVec runs in O(r·c). Clone copies in O(r·c).
package matrix

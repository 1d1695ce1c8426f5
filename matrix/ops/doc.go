// Package ops provides decompositions on matrix.Matrix values: Doolittle LU
// with partial pivoting and the LU-based inverse, the fallback for parameter
// covariance estimates when the χ² Hessian is not positive definite.
package ops

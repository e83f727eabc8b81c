// Package matrix provides Boolean matrices over the (OR, AND) semiring.
//
// The matrix package provides:
//
//   - Bool, an r×c Boolean matrix whose rows are packed bitsets ([]uint64),
//     so a row OR is one word operation per 64 columns.
//   - Mul, the semiring product: C[i][k] = OR_j (A[i][j] AND B[j][k]).
//   - MulOr, the accumulating product dst |= A·B, reporting whether dst grew.
//     This is the inner step of a monotone fixed-point closure.
//   - Or, Nnz, Each, Equal, Clone for change detection and materialization.
//
// Products are output-sensitive: for every set cell (i,j) of A the j-th row
// of B is ORed into row i of the result, so sparse operands stay cheap.
// Entries are Boolean, so there is no numeric overflow or tolerance policy.
//
// See the examples in this package and closure for usage patterns.
package matrix

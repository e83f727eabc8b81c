// SPDX-License-Identifier: MIT
// File: bool_ops.go
// Role: semiring operations on Bool (OR, product, accumulating product).
//
// Contract:
//   - Operands are never mutated except the receiver of Or/MulOr.
//   - MulOr is safe when dst aliases a or b: the product is taken from the
//     operands as they were on entry.
//
// Complexity:
//   - Or: O(r·⌈c/64⌉).
//   - Mul/MulOr: O(nnz(A)·⌈cols(B)/64⌉).

package matrix

import "fmt"

// Or sets m |= o cell-wise and reports whether any cell of m changed.
// Returns ErrDimensionMismatch if the shapes differ.
func (m *Bool) Or(o *Bool) (bool, error) {
	if m == nil || o == nil {
		return false, ErrNilMatrix
	}
	if m.r != o.r || m.c != o.c {
		return false, fmt.Errorf("Or: %dx%d vs %dx%d: %w", m.r, m.c, o.r, o.c, ErrDimensionMismatch)
	}
	changed := false
	for k, w := range o.data {
		if merged := m.data[k] | w; merged != m.data[k] {
			m.data[k] = merged
			changed = true
		}
	}

	return changed, nil
}

// Mul returns the Boolean product a·b: cell (i,k) is set iff some j has
// a[i][j] and b[j][k] set.
// Returns ErrDimensionMismatch if a.Cols != b.Rows.
func Mul(a, b *Bool) (*Bool, error) {
	if err := checkMul(a, b); err != nil {
		return nil, err
	}
	out, err := NewBool(a.r, b.c)
	if err != nil {
		return nil, err
	}
	mulInto(out, a, b)

	return out, nil
}

// MulOr accumulates m |= a·b and reports whether m grew.
// m must be a.Rows × b.Cols.
func (m *Bool) MulOr(a, b *Bool) (bool, error) {
	if m == nil {
		return false, ErrNilMatrix
	}
	if err := checkMul(a, b); err != nil {
		return false, err
	}
	if m.r != a.r || m.c != b.c {
		return false, fmt.Errorf("MulOr: dst %dx%d, product %dx%d: %w", m.r, m.c, a.r, b.c, ErrDimensionMismatch)
	}
	if m == a || m == b {
		p, err := Mul(a, b)
		if err != nil {
			return false, err
		}

		return m.Or(p)
	}

	return mulInto(m, a, b), nil
}

func checkMul(a, b *Bool) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.c != b.r {
		return fmt.Errorf("Mul: %dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch)
	}

	return nil
}

// mulInto ORs a·b into dst row by row. dst must not alias a or b.
func mulInto(dst, a, b *Bool) bool {
	grew := false
	for i := 0; i < a.r; i++ {
		drow := dst.row(i)
		eachBit(a.row(i), func(j int) {
			for k, w := range b.row(j) {
				if merged := drow[k] | w; merged != drow[k] {
					drow[k] = merged
					grew = true
				}
			}
		})
	}

	return grew
}

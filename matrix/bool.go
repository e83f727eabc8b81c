// SPDX-License-Identifier: MIT
// File: bool.go
// Role: Bool matrix storage, construction and element access.
//
// Layout:
//   - Row-major bitsets: row i occupies data[i*stride : (i+1)*stride],
//     column j is bit j%64 of word j/64.
//   - Bits beyond Cols in the last word of a row are always zero.
//
// Determinism:
//   - Each visits set cells in row-major order.

package matrix

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// Bool is an r×c Boolean matrix. The zero value is an empty 0×0 matrix.
type Bool struct {
	r, c   int
	stride int      // words per row
	data   []uint64 // len == r*stride
}

// boolErrorf wraps an underlying error with Bool method context.
func boolErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Bool.%s(%d,%d): %w", method, row, col, err)
}

// NewBool creates an r×c all-false matrix. Zero dimensions are allowed
// (an empty graph yields 0×0 matrices).
// Complexity: O(r·⌈c/64⌉) time and memory.
func NewBool(rows, cols int) (*Bool, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewBool(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	stride := (cols + wordBits - 1) / wordBits

	return &Bool{r: rows, c: cols, stride: stride, data: make([]uint64, rows*stride)}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Bool, error) {
	m, err := NewBool(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.set(i, i)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Bool) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Bool) Cols() int { return m.c }

// At reports whether cell (row, col) is set.
// Returns ErrOutOfRange for invalid indices.
func (m *Bool) At(row, col int) (bool, error) {
	if m == nil {
		return false, ErrNilMatrix
	}
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return false, boolErrorf("At", row, col, ErrOutOfRange)
	}

	return m.data[row*m.stride+col/wordBits]&(1<<(uint(col)%wordBits)) != 0, nil
}

// Set assigns v to cell (row, col).
// Returns ErrOutOfRange for invalid indices.
func (m *Bool) Set(row, col int, v bool) error {
	if m == nil {
		return ErrNilMatrix
	}
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return boolErrorf("Set", row, col, ErrOutOfRange)
	}
	if v {
		m.set(row, col)
	} else {
		m.data[row*m.stride+col/wordBits] &^= 1 << (uint(col) % wordBits)
	}

	return nil
}

func (m *Bool) set(row, col int) {
	m.data[row*m.stride+col/wordBits] |= 1 << (uint(col) % wordBits)
}

func (m *Bool) row(i int) []uint64 {
	return m.data[i*m.stride : (i+1)*m.stride]
}

// Nnz returns the number of set cells.
// Complexity: O(r·⌈c/64⌉).
func (m *Bool) Nnz() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, w := range m.data {
		n += bits.OnesCount64(w)
	}

	return n
}

// Each calls fn(i, j) for every set cell in row-major order.
func (m *Bool) Each(fn func(i, j int)) {
	if m == nil {
		return
	}
	for i := 0; i < m.r; i++ {
		eachBit(m.row(i), func(j int) { fn(i, j) })
	}
}

// RowIndices returns the set columns of row i in ascending order.
func (m *Bool) RowIndices(i int) ([]int, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if i < 0 || i >= m.r {
		return nil, boolErrorf("RowIndices", i, 0, ErrOutOfRange)
	}
	var out []int
	eachBit(m.row(i), func(j int) { out = append(out, j) })

	return out, nil
}

// eachBit calls fn with the index of every set bit of row, ascending.
func eachBit(row []uint64, fn func(j int)) {
	for w, word := range row {
		for word != 0 {
			t := bits.TrailingZeros64(word)
			fn(w*wordBits + t)
			word &= word - 1
		}
	}
}

// Clone returns a deep copy of m.
func (m *Bool) Clone() *Bool {
	if m == nil {
		return nil
	}
	data := make([]uint64, len(m.data))
	copy(data, m.data)

	return &Bool{r: m.r, c: m.c, stride: m.stride, data: data}
}

// Equal reports whether m and o have the same shape and cells.
func (m *Bool) Equal(o *Bool) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}

// String renders one line per row, '1' for set cells and '.' otherwise.
func (m *Bool) String() string {
	if m == nil {
		return "<nil>"
	}
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		row := m.row(i)
		for j := 0; j < m.c; j++ {
			if row[j/wordBits]&(1<<(uint(j)%wordBits)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

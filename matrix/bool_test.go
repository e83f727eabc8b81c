// SPDX-License-Identifier: MIT
// Package matrix_test verifies Bool construction, access and semiring laws.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cfpq/matrix"
)

// mustBool builds an r×c matrix with the given set cells or fails the test.
func mustBool(t testing.TB, r, c int, cells ...[2]int) *matrix.Bool {
	t.Helper()
	m, err := matrix.NewBool(r, c)
	require.NoError(t, err)
	for _, rc := range cells {
		require.NoError(t, m.Set(rc[0], rc[1], true))
	}

	return m
}

func TestNewBool_Shapes(t *testing.T) {
	_, err := matrix.NewBool(-1, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	empty, err := matrix.NewBool(0, 0)
	require.NoError(t, err)
	assert.Zero(t, empty.Nnz())
	assert.Equal(t, "", empty.String())

	// Columns spanning several words.
	wide := mustBool(t, 2, 130, [2]int{0, 0}, [2]int{0, 64}, [2]int{1, 129})
	assert.Equal(t, 3, wide.Nnz())
	ok, err := wide.At(1, 129)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBool_AtSetBounds(t *testing.T) {
	m := mustBool(t, 2, 2)
	_, err := m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, true), matrix.ErrOutOfRange)

	require.NoError(t, m.Set(1, 0, true))
	v, _ := m.At(1, 0)
	assert.True(t, v)
	require.NoError(t, m.Set(1, 0, false))
	v, _ = m.At(1, 0)
	assert.False(t, v)

	var nilM *matrix.Bool
	_, err = nilM.At(0, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	assert.Zero(t, nilM.Nnz())
}

func TestIdentity(t *testing.T) {
	id, err := matrix.Identity(3)
	require.NoError(t, err)
	assert.Equal(t, "1..\n.1.\n..1\n", id.String())
	assert.Equal(t, 3, id.Nnz())
}

func TestBool_Or(t *testing.T) {
	a := mustBool(t, 2, 2, [2]int{0, 1})
	b := mustBool(t, 2, 2, [2]int{0, 1}, [2]int{1, 0})

	changed, err := a.Or(b)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, a.Equal(b))

	changed, err = a.Or(b)
	require.NoError(t, err)
	assert.False(t, changed, "OR with a subset changes nothing")

	_, err = a.Or(mustBool(t, 3, 2))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Or(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_Path(t *testing.T) {
	// 0→1, 1→2: a·a reaches 0→2 only.
	a := mustBool(t, 3, 3, [2]int{0, 1}, [2]int{1, 2})
	p, err := matrix.Mul(a, a)
	require.NoError(t, err)
	assert.Equal(t, "..1\n...\n...\n", p.String())

	_, err = matrix.Mul(a, mustBool(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMul_Rectangular(t *testing.T) {
	a := mustBool(t, 2, 3, [2]int{0, 2}, [2]int{1, 0})
	b := mustBool(t, 3, 1, [2]int{2, 0})
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Rows())
	assert.Equal(t, 1, p.Cols())
	assert.Equal(t, "1\n.\n", p.String())
}

func TestMul_SemiringLaws(t *testing.T) {
	a := mustBool(t, 3, 3, [2]int{0, 1}, [2]int{2, 2})
	b := mustBool(t, 3, 3, [2]int{1, 0}, [2]int{2, 1})
	c := mustBool(t, 3, 3, [2]int{0, 2}, [2]int{1, 1})
	id, _ := matrix.Identity(3)

	// Identity is neutral.
	ai, _ := matrix.Mul(a, id)
	ia, _ := matrix.Mul(id, a)
	assert.True(t, a.Equal(ai))
	assert.True(t, a.Equal(ia))

	// Associativity.
	ab, _ := matrix.Mul(a, b)
	abc1, _ := matrix.Mul(ab, c)
	bc, _ := matrix.Mul(b, c)
	abc2, _ := matrix.Mul(a, bc)
	assert.True(t, abc1.Equal(abc2))

	// Distributivity over OR: a·(b|c) == a·b | a·c.
	bOrC := b.Clone()
	_, _ = bOrC.Or(c)
	left, _ := matrix.Mul(a, bOrC)
	ac, _ := matrix.Mul(a, c)
	right := ab.Clone()
	_, _ = right.Or(ac)
	assert.True(t, left.Equal(right))
}

func TestBool_MulOr(t *testing.T) {
	a := mustBool(t, 3, 3, [2]int{0, 1}, [2]int{1, 2})
	dst := mustBool(t, 3, 3)

	grew, err := dst.MulOr(a, a)
	require.NoError(t, err)
	assert.True(t, grew)
	grew, err = dst.MulOr(a, a)
	require.NoError(t, err)
	assert.False(t, grew, "second accumulation adds nothing")

	_, err = mustBool(t, 2, 2).MulOr(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestBool_MulOrAliased(t *testing.T) {
	// dst == a: the product uses a as it was on entry, so one step of
	// squaring a path 0→1→2→3 adds exactly 0→2 and 1→3.
	a := mustBool(t, 4, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3})
	grew, err := a.MulOr(a, a)
	require.NoError(t, err)
	assert.True(t, grew)
	assert.Equal(t, ".11.\n..11\n...1\n....\n", a.String())
}

func TestBool_EachAndRowIndices(t *testing.T) {
	m := mustBool(t, 2, 70, [2]int{1, 69}, [2]int{0, 3}, [2]int{1, 2})
	var got [][2]int
	m.Each(func(i, j int) { got = append(got, [2]int{i, j}) })
	assert.Equal(t, [][2]int{{0, 3}, {1, 2}, {1, 69}}, got)

	row, err := m.RowIndices(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 69}, row)
	_, err = m.RowIndices(5)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestBool_CloneEqual(t *testing.T) {
	m := mustBool(t, 2, 2, [2]int{0, 0})
	c := m.Clone()
	assert.True(t, m.Equal(c))
	require.NoError(t, c.Set(1, 1, true))
	assert.False(t, m.Equal(c))
	assert.False(t, m.Equal(mustBool(t, 2, 3)))
	assert.False(t, m.Equal(nil))
}

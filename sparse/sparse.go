// Package sparse implements a compressed sparse row (CSR) matrix used to
// store feature values, along with the row-vector type produced by
// vectorizers. The matrix satisfies gonum's mat.Matrix interface so it can
// be handed directly to dense linear algebra when needed.
package sparse

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimMismatch     = errors.New("vector dimension does not match matrix column count")
	ErrRowMismatch     = errors.New("matrices have a different number of rows")
	ErrIndexOutOfRange = errors.New("column index out of range")
)

// Vector is a sparse float64 row vector. Indices holds the column positions
// of the stored values and must stay within Dim.
type Vector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// NewVector creates an empty sparse vector with the given dimension.
func NewVector(dim int) Vector {
	return Vector{Dim: dim}
}

// Set adds or updates a value at the given index.
func (v *Vector) Set(idx int, val float64) {
	for i, existing := range v.Indices {
		if existing == idx {
			v.Values[i] = val
			return
		}
	}
	v.Indices = append(v.Indices, idx)
	v.Values = append(v.Values, val)
}

// Nnz returns the number of stored entries.
func (v Vector) Nnz() int {
	return len(v.Indices)
}

// Dense converts the vector to a dense float64 slice.
func (v Vector) Dense() []float64 {
	dense := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		if idx >= 0 && idx < v.Dim {
			dense[idx] = v.Values[i]
		}
	}
	return dense
}

// Matrix is an immutable CSR matrix. Column indices are sorted within each
// row. All transformations return new matrices.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

// New returns an empty rows x cols matrix with no stored values.
func New(rows, cols int) *Matrix {
	return &Matrix{
		rows:   rows,
		cols:   cols,
		indptr: make([]int, rows+1),
	}
}

// FromVectors assembles a matrix from one sparse vector per row. Every
// vector's dimension must equal cols.
func FromVectors(vecs []Vector, cols int) (*Matrix, error) {
	m := &Matrix{
		rows:   len(vecs),
		cols:   cols,
		indptr: make([]int, len(vecs)+1),
	}
	for i, v := range vecs {
		if v.Dim != cols {
			return nil, fmt.Errorf("row %d has dimension %d, want %d: %w", i, v.Dim, cols, ErrDimMismatch)
		}
		type entry struct {
			idx int
			val float64
		}
		entries := make([]entry, 0, len(v.Indices))
		for j, idx := range v.Indices {
			if idx < 0 || idx >= cols {
				return nil, fmt.Errorf("row %d stores column %d of %d: %w", i, idx, cols, ErrIndexOutOfRange)
			}
			entries = append(entries, entry{idx, v.Values[j]})
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].idx < entries[b].idx })
		for _, e := range entries {
			m.indices = append(m.indices, e.idx)
			m.data = append(m.data, e.val)
		}
		m.indptr[i+1] = len(m.indices)
	}
	return m, nil
}

// FromDense builds a matrix from dense rows, storing only non-zero values.
// All rows must have the same length.
func FromDense(rows [][]float64) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := &Matrix{
		rows:   len(rows),
		cols:   cols,
		indptr: make([]int, len(rows)+1),
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), cols, ErrDimMismatch)
		}
		for j, val := range row {
			if val == 0 {
				continue
			}
			m.indices = append(m.indices, j)
			m.data = append(m.data, val)
		}
		m.indptr[i+1] = len(m.indices)
	}
	return m, nil
}

// Dims returns the row and column counts.
func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

// NNZ returns the number of stored values.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// At returns the value at row i, column j. Part of the mat.Matrix interface.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("sparse: index out of range")
	}
	start, end := m.indptr[i], m.indptr[i+1]
	pos := start + sort.SearchInts(m.indices[start:end], j)
	if pos < end && m.indices[pos] == j {
		return m.data[pos]
	}
	return 0
}

// T returns the transpose of the matrix. Part of the mat.Matrix interface.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// RowDense returns row i as a newly allocated dense slice.
func (m *Matrix) RowDense(i int) []float64 {
	row := make([]float64, m.cols)
	for pos := m.indptr[i]; pos < m.indptr[i+1]; pos++ {
		row[m.indices[pos]] = m.data[pos]
	}
	return row
}

// RowNonZero returns the stored column indices and values of row i. The
// returned slices alias internal storage and must not be modified.
func (m *Matrix) RowNonZero(i int) ([]int, []float64) {
	start, end := m.indptr[i], m.indptr[i+1]
	return m.indices[start:end], m.data[start:end]
}

// Copy returns a deep copy of the matrix.
func (m *Matrix) Copy() *Matrix {
	out := &Matrix{
		rows:    m.rows,
		cols:    m.cols,
		indptr:  make([]int, len(m.indptr)),
		indices: make([]int, len(m.indices)),
		data:    make([]float64, len(m.data)),
	}
	copy(out.indptr, m.indptr)
	copy(out.indices, m.indices)
	copy(out.data, m.data)
	return out
}

// SelectRows returns a new matrix holding only the rows where keep is true,
// in their original relative order. keep must have one entry per row.
func (m *Matrix) SelectRows(keep []bool) *Matrix {
	out := &Matrix{cols: m.cols, indptr: []int{0}}
	for i := 0; i < m.rows && i < len(keep); i++ {
		if !keep[i] {
			continue
		}
		start, end := m.indptr[i], m.indptr[i+1]
		out.indices = append(out.indices, m.indices[start:end]...)
		out.data = append(out.data, m.data[start:end]...)
		out.indptr = append(out.indptr, len(out.indices))
		out.rows++
	}
	return out
}

// SelectColumns returns a new matrix holding the listed columns in the
// given order. Column indices outside the matrix are skipped.
func (m *Matrix) SelectColumns(cols []int) *Matrix {
	remap := make(map[int]int, len(cols))
	n := 0
	for _, c := range cols {
		if c < 0 || c >= m.cols {
			continue
		}
		if _, ok := remap[c]; ok {
			continue
		}
		remap[c] = n
		n++
	}
	out := &Matrix{
		rows:   m.rows,
		cols:   n,
		indptr: make([]int, m.rows+1),
	}
	type entry struct {
		idx int
		val float64
	}
	for i := 0; i < m.rows; i++ {
		entries := make([]entry, 0, m.indptr[i+1]-m.indptr[i])
		for pos := m.indptr[i]; pos < m.indptr[i+1]; pos++ {
			if newIdx, ok := remap[m.indices[pos]]; ok {
				entries = append(entries, entry{newIdx, m.data[pos]})
			}
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].idx < entries[b].idx })
		for _, e := range entries {
			out.indices = append(out.indices, e.idx)
			out.data = append(out.data, e.val)
		}
		out.indptr[i+1] = len(out.indices)
	}
	return out
}

// HStack concatenates two matrices column-wise, left columns first. Both
// must have the same number of rows.
func HStack(left, right *Matrix) (*Matrix, error) {
	if left.rows != right.rows {
		return nil, fmt.Errorf("left has %d rows, right has %d: %w", left.rows, right.rows, ErrRowMismatch)
	}
	out := &Matrix{
		rows:   left.rows,
		cols:   left.cols + right.cols,
		indptr: make([]int, left.rows+1),
	}
	for i := 0; i < left.rows; i++ {
		start, end := left.indptr[i], left.indptr[i+1]
		out.indices = append(out.indices, left.indices[start:end]...)
		out.data = append(out.data, left.data[start:end]...)

		start, end = right.indptr[i], right.indptr[i+1]
		for pos := start; pos < end; pos++ {
			out.indices = append(out.indices, right.indices[pos]+left.cols)
		}
		out.data = append(out.data, right.data[start:end]...)
		out.indptr[i+1] = len(out.indices)
	}
	return out, nil
}

// ToDense converts the matrix to a gonum dense matrix. Returns nil for a
// matrix with no columns or rows.
func (m *Matrix) ToDense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return nil
	}
	obs := make([]float64, m.rows*m.cols)
	for i := 0; i < m.rows; i++ {
		for pos := m.indptr[i]; pos < m.indptr[i+1]; pos++ {
			obs[i*m.cols+m.indices[pos]] = m.data[pos]
		}
	}
	return mat.NewDense(m.rows, m.cols, obs)
}

package skll

import (
	"testing"

	"github.com/alvations-all/skll/sparse"
	"github.com/alvations-all/skll/vectorizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// newTestSet builds a dictionary-vectorized feature set from dense rows.
func newTestSet(t *testing.T, ids []string, classes []Class, rows [][]float64, names []string) *FeatureSet {
	t.Helper()
	feats, err := sparse.FromDense(rows)
	require.NoError(t, err)
	vec, err := vectorizer.NewDictVectorizerFromNames(names)
	require.NoError(t, err)
	fs, err := New(ids, classes, feats, vec)
	require.NoError(t, err)
	return fs
}

func TestNew(t *testing.T) {
	feats, err := sparse.FromDense([][]float64{
		{1, 0},
		{0, 2},
	})
	require.NoError(t, err)
	vec, err := vectorizer.NewDictVectorizerFromNames([]string{"f1", "f2"})
	require.NoError(t, err)

	testData := map[string]struct {
		ids     []string
		classes []Class
		feats   *sparse.Matrix
		vec     vectorizer.Vectorizer
		err     error
	}{
		"fully specified": {
			ids:     []string{"a", "b"},
			classes: []Class{NewClass("x"), {}},
			feats:   feats,
			vec:     vec,
		},
		"ids and classes default to unset": {
			feats: feats,
			vec:   vec,
		},
		"id count mismatch": {
			ids:   []string{"a"},
			feats: feats,
			vec:   vec,
			err:   ErrShapeMismatch,
		},
		"class count mismatch": {
			ids:     []string{"a", "b"},
			classes: []Class{NewClass("x")},
			feats:   feats,
			vec:     vec,
			err:     ErrShapeMismatch,
		},
		"vectorizer width mismatch": {
			feats: feats,
			vec: func() vectorizer.Vectorizer {
				v, err := vectorizer.NewDictVectorizerFromNames([]string{"only"})
				require.NoError(t, err)
				return v
			}(),
			err: ErrShapeMismatch,
		},
		"placeholder": {},
		"placeholder with mismatched ids and classes": {
			ids:     []string{"a", "b"},
			classes: []Class{NewClass("x")},
			err:     ErrShapeMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			fs, err := New(td.ids, td.classes, td.feats, td.vec)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			if td.feats == nil {
				assert.Equal(t, 0, fs.NumFeatures())
				return
			}
			rows, cols := td.feats.Dims()
			assert.Equal(t, rows, fs.Len())
			assert.Equal(t, cols, fs.NumFeatures())
			assert.Len(t, fs.IDs(), rows)
			assert.Len(t, fs.Classes(), rows)
		})
	}
}

func TestNewDefaultsAreUnset(t *testing.T) {
	feats, err := sparse.FromDense([][]float64{{1}, {2}})
	require.NoError(t, err)

	fs, err := New(nil, nil, feats, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, fs.IDs())
	for _, c := range fs.Classes() {
		assert.False(t, c.Valid)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	fs := newTestSet(t,
		[]string{"a", "b"},
		[]Class{NewClass("x"), NewClass("y")},
		[][]float64{{1, 2}, {3, 4}},
		[]string{"f1", "f2"},
	)

	cp := fs.Copy()
	cp.Filter(FilterOptions{IDs: []string{"a"}})

	assert.Equal(t, 1, cp.Len())
	assert.Equal(t, 2, fs.Len())
	assert.Equal(t, []string{"a", "b"}, fs.IDs())
	assert.Equal(t, 2, fs.NumFeatures())
}

func TestMatrix(t *testing.T) {
	fs := newTestSet(t,
		[]string{"a", "b"},
		nil,
		[][]float64{{1, 0}, {0, 2}},
		[]string{"f1", "f2"},
	)

	expected := mat.NewDense(2, 2, []float64{
		1, 0,
		0, 2,
	})
	assert.True(t, mat.Equal(expected, fs.Matrix()))

	placeholder, err := New(nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, placeholder.Matrix())
}

func TestClassEqual(t *testing.T) {
	testData := map[string]struct {
		a, b     Class
		expected bool
	}{
		"both unset":             {Class{}, Class{}, true},
		"unset vs set":           {Class{}, NewClass("x"), false},
		"same value":             {NewClass("x"), NewClass("x"), true},
		"different value":        {NewClass("x"), NewClass("y"), false},
		"unset values are equal": {Class{Value: "junk"}, Class{}, true},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.a.Equal(td.b))
			assert.Equal(t, td.expected, td.b.Equal(td.a))
		})
	}
}

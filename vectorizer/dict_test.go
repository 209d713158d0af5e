package vectorizer

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictVectorizerFit(t *testing.T) {
	testData := map[string]struct {
		samples  []map[string]any
		expNames []string
	}{
		"empty": {
			expNames: []string{},
		},
		"numeric and bool keep their key": {
			samples: []map[string]any{
				{"len": 3.5, "caps": true},
				{"len": 1.0},
			},
			expNames: []string{"caps", "len"},
		},
		"string values become one-hot": {
			samples: []map[string]any{
				{"pos": "NN"},
				{"pos": "VB", "len": 2},
			},
			expNames: []string{"len", "pos=NN", "pos=VB"},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			dv := NewDictVectorizer()
			dv.Fit(td.samples)
			assert.Equal(t, td.expNames, dv.FeatureNames())
			assert.Equal(t, len(td.expNames), dv.NumFeatures())
			for i, featName := range td.expNames {
				idx, ok := dv.FeatureIndex(featName)
				assert.True(t, ok)
				assert.Equal(t, i, idx)

				back, ok := dv.FeatureName(i)
				assert.True(t, ok)
				assert.Equal(t, featName, back)
			}
		})
	}
}

func TestDictVectorizerTransform(t *testing.T) {
	dv := NewDictVectorizer()
	vecs := dv.FitTransform([]map[string]any{
		{"len": 3.0, "pos": "NN"},
		{"len": 1.0, "caps": true},
	})
	require.Len(t, vecs, 2)

	// sorted vocabulary: caps, len, pos=NN
	assert.Equal(t, []float64{0, 3, 1}, vecs[0].Dense())
	assert.Equal(t, []float64{1, 1, 0}, vecs[1].Dense())

	// names outside the vocabulary are dropped
	sv := dv.Transform(map[string]any{"unknown": 5.0, "len": 2.0})
	assert.Equal(t, []float64{0, 2, 0}, sv.Dense())
}

func TestNewDictVectorizerFromNames(t *testing.T) {
	dv, err := NewDictVectorizerFromNames([]string{"b", "a", "c"})
	require.NoError(t, err)

	// explicit ordering is preserved, not sorted
	assert.Equal(t, []string{"b", "a", "c"}, dv.FeatureNames())
	idx, ok := dv.FeatureIndex("a")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, err = NewDictVectorizerFromNames([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestDictVectorizerCopy(t *testing.T) {
	dv, err := NewDictVectorizerFromNames([]string{"a", "b"})
	require.NoError(t, err)

	cp := dv.Copy()
	assert.Equal(t, dv.FeatureNames(), cp.FeatureNames())

	cp.Fit([]map[string]any{{"z": 1.0}})
	assert.Equal(t, []string{"a", "b"}, dv.FeatureNames())
}

func TestDictVectorizerJSON(t *testing.T) {
	dv, err := NewDictVectorizerFromNames([]string{"b", "a"})
	require.NoError(t, err)

	out, err := json.Marshal(dv)
	require.NoError(t, err)

	var next DictVectorizer
	require.NoError(t, json.Unmarshal(out, &next))
	assert.Equal(t, dv.FeatureNames(), next.FeatureNames())

	idx, ok := next.FeatureIndex("a")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestDictVectorizerVariant(t *testing.T) {
	assert.Equal(t, Dictionary, NewDictVectorizer().Variant())
}

package vectorizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatureHasher(t *testing.T) {
	_, err := NewFeatureHasher(0)
	assert.ErrorIs(t, err, ErrNonPositiveWidth)

	fh, err := NewFeatureHasher(64)
	require.NoError(t, err)
	assert.Equal(t, 64, fh.NumFeatures())
	assert.Equal(t, Hashing, fh.Variant())
}

func TestFeatureHasherIndex(t *testing.T) {
	fh, err := NewFeatureHasher(16)
	require.NoError(t, err)

	for _, name := range []string{"alpha", "beta", "never seen before"} {
		idx, ok := fh.FeatureIndex(name)
		assert.True(t, ok, "every name resolves")
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 16)

		again, _ := fh.FeatureIndex(name)
		assert.Equal(t, idx, again, "index is stable")

		sign := fh.Sign(name)
		assert.True(t, sign == 1.0 || sign == -1.0)
		assert.Equal(t, sign, fh.Sign(name), "sign is stable")
	}
}

func TestFeatureHasherTransform(t *testing.T) {
	fh, err := NewFeatureHasher(1 << 16)
	require.NoError(t, err)

	sv := fh.Transform(map[string]any{"len": 3.0, "caps": true})
	assert.Equal(t, 1<<16, sv.Dim)

	// with a wide space the two names land on distinct columns and keep
	// their magnitudes up to sign
	require.Equal(t, 2, sv.Nnz())
	mags := make(map[float64]struct{}, 2)
	for _, v := range sv.Values {
		mags[math.Abs(v)] = struct{}{}
	}
	assert.Contains(t, mags, 3.0)
	assert.Contains(t, mags, 1.0)
}

func TestFeatureHasherNotEnumerable(t *testing.T) {
	fh, err := NewFeatureHasher(8)
	require.NoError(t, err)

	var v Vectorizer = fh
	_, ok := v.(Enumerable)
	assert.False(t, ok)
}

package vectorizer

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/alvations-all/skll/sparse"
)

var ErrNonPositiveWidth = errors.New("hash width must be positive")

// FeatureHasher maps feature names to a fixed number of columns through
// FNV-1a. Columns are not individually nameable and there is no vocabulary
// to fit; collisions are mitigated by an alternating sign bit, so colliding
// features cancel in expectation rather than accumulate.
type FeatureHasher struct {
	width int
}

// NewFeatureHasher creates a hasher with the given column count.
func NewFeatureHasher(width int) (*FeatureHasher, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width of %d: %w", width, ErrNonPositiveWidth)
	}
	return &FeatureHasher{width: width}, nil
}

// Transform converts a feature map to a sparse vector, accumulating signed
// values of colliding names.
func (fh *FeatureHasher) Transform(sample map[string]any) sparse.Vector {
	acc := make(map[int]float64)
	for k, v := range sample {
		name := featureKey(k, v)
		idx, _ := fh.FeatureIndex(name)
		acc[idx] += fh.Sign(name) * featureValue(v)
	}
	sv := sparse.NewVector(fh.width)
	for idx, val := range acc {
		if val != 0 {
			sv.Set(idx, val)
		}
	}
	return sv
}

// Variant reports the hashing strategy.
func (fh *FeatureHasher) Variant() Variant {
	return Hashing
}

// NumFeatures returns the fixed column count.
func (fh *FeatureHasher) NumFeatures() int {
	return fh.width
}

// FeatureIndex hashes a name into a column. Every name resolves.
func (fh *FeatureHasher) FeatureIndex(name string) (int, bool) {
	return int(hashName(name) % uint64(fh.width)), true
}

// Sign returns the +1/-1 sign applied to values stored under a name.
func (fh *FeatureHasher) Sign(name string) float64 {
	if hashName(name)>>63 == 1 {
		return -1.0
	}
	return 1.0
}

func hashName(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

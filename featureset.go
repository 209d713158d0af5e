// Package skll implements an in-memory container for labeled, vectorized
// examples. A FeatureSet holds parallel per-example identifiers and labels
// next to a sparse feature matrix whose columns are named by a vectorizer,
// and supports column-wise merging, row/column filtering, lazy filtered
// iteration, and set-difference by feature name.
package skll

import (
	"errors"
	"fmt"

	"github.com/alvations-all/skll/sparse"
	"github.com/alvations-all/skll/vectorizer"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch          = errors.New("ids, classes, and features disagree on example count")
	ErrIncompatibleVectorizer = errors.New("feature sets do not use the same vectorizer variant")
	ErrMisalignedIDs          = errors.New("example ids are not the same or not in the same order")
	ErrDuplicateFeatureName   = errors.New("feature sets share a feature name")
	ErrConflictingLabels      = errors.New("feature sets have conflicting labels for the same example")
	ErrHashingCombine         = errors.New("cannot combine two hashing-vectorized feature sets")
)

// FeatureSet holds ordered per-example identifiers and optional labels
// alongside a sparse feature matrix and the vectorizer that named its
// columns. The id order is the alignment key across all per-example data
// and is never reordered by any operation.
//
// A FeatureSet must not be mutated via Filter while other goroutines read
// it; callers needing concurrent access must synchronize externally or
// work on copies.
type FeatureSet struct {
	ids     []string
	classes []Class
	feats   *sparse.Matrix
	vec     vectorizer.Vectorizer
}

// New constructs a FeatureSet. Any argument may be nil. When features are
// present, nil ids or classes default to unset entries sized to the row
// count, and any populated length disagreement fails. Construction without
// features yields an empty placeholder usable only as a merge operand.
func New(ids []string, classes []Class, feats *sparse.Matrix, vec vectorizer.Vectorizer) (*FeatureSet, error) {
	fs := &FeatureSet{feats: feats, vec: vec}

	if feats == nil {
		if ids != nil && classes != nil && len(ids) != len(classes) {
			return nil, fmt.Errorf("%d ids but %d classes: %w", len(ids), len(classes), ErrShapeMismatch)
		}
		fs.ids = append([]string(nil), ids...)
		fs.classes = append([]Class(nil), classes...)
		return fs, nil
	}

	rows, cols := feats.Dims()
	if ids == nil {
		ids = make([]string, rows)
	}
	if classes == nil {
		classes = make([]Class, rows)
	}
	if len(ids) != rows {
		return nil, fmt.Errorf("%d ids for %d feature rows: %w", len(ids), rows, ErrShapeMismatch)
	}
	if len(classes) != rows {
		return nil, fmt.Errorf("%d classes for %d feature rows: %w", len(classes), rows, ErrShapeMismatch)
	}
	if vec != nil && vec.NumFeatures() != cols {
		return nil, fmt.Errorf(
			"vectorizer declares %d columns but features has %d: %w",
			vec.NumFeatures(), cols, ErrShapeMismatch,
		)
	}

	fs.ids = make([]string, rows)
	fs.classes = make([]Class, rows)
	copy(fs.ids, ids)
	copy(fs.classes, classes)
	return fs, nil
}

// Len returns the example count.
func (fs *FeatureSet) Len() int {
	return len(fs.ids)
}

// NumFeatures returns the feature column count.
func (fs *FeatureSet) NumFeatures() int {
	if fs.feats == nil {
		return 0
	}
	_, cols := fs.feats.Dims()
	return cols
}

// IDs returns a copy of the example identifiers in order.
func (fs *FeatureSet) IDs() []string {
	return append([]string(nil), fs.ids...)
}

// Classes returns a copy of the example labels in order.
func (fs *FeatureSet) Classes() []Class {
	return append([]Class(nil), fs.classes...)
}

// Features returns the underlying sparse matrix, or nil for a placeholder
// set. The matrix is shared with the set and must not be modified.
func (fs *FeatureSet) Features() *sparse.Matrix {
	return fs.feats
}

// Vectorizer returns the vectorizer that named the feature columns.
func (fs *FeatureSet) Vectorizer() vectorizer.Vectorizer {
	return fs.vec
}

// Copy returns a deep copy of the set. The vectorizer is shared when it
// cannot be copied; dictionary vectorizers are duplicated.
func (fs *FeatureSet) Copy() *FeatureSet {
	out := &FeatureSet{
		ids:     append([]string(nil), fs.ids...),
		classes: append([]Class(nil), fs.classes...),
		vec:     fs.vec,
	}
	if fs.feats != nil {
		out.feats = fs.feats.Copy()
	}
	if dv, ok := fs.vec.(*vectorizer.DictVectorizer); ok {
		out.vec = dv.Copy()
	}
	return out
}

// Matrix returns a dense gonum view of the feature matrix, or nil for a
// placeholder set.
func (fs *FeatureSet) Matrix() *mat.Dense {
	if fs.feats == nil {
		return nil
	}
	return fs.feats.ToDense()
}

func (fs *FeatureSet) empty() bool {
	return fs == nil || fs.feats == nil
}

func anyValid(classes []Class) bool {
	for _, c := range classes {
		if c.Valid {
			return true
		}
	}
	return false
}

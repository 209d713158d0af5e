package skll

import (
	"fmt"

	"github.com/alvations-all/skll/sparse"
	"github.com/alvations-all/skll/vectorizer"
)

// Combine joins two feature sets describing the same ordered examples but
// disjoint feature columns into a new set holding the union of columns,
// left columns first. Both operands are left unchanged, also on failure.
//
// Preconditions: both vectorizers must be of the same variant, the id
// sequences must match element-wise, and under the dictionary variant the
// two vocabularies must be disjoint. Combining two hashing-vectorized sets
// is not defined (there is no shared vocabulary to align) and fails with
// ErrHashingCombine. An empty placeholder operand yields a copy of the
// other set.
func (fs *FeatureSet) Combine(other *FeatureSet) (*FeatureSet, error) {
	if fs.empty() {
		return other.Copy(), nil
	}
	if other.empty() {
		return fs.Copy(), nil
	}

	if fs.vec == nil || other.vec == nil || fs.vec.Variant() != other.vec.Variant() {
		return nil, fmt.Errorf("cannot combine feature sets: %w", ErrIncompatibleVectorizer)
	}
	if fs.vec.Variant() == vectorizer.Hashing {
		return nil, ErrHashingCombine
	}

	if len(fs.ids) != len(other.ids) {
		return nil, fmt.Errorf("%d ids vs %d ids: %w", len(fs.ids), len(other.ids), ErrMisalignedIDs)
	}
	for i := range fs.ids {
		if fs.ids[i] != other.ids[i] {
			return nil, fmt.Errorf(
				"id %q vs %q at position %d: %w",
				fs.ids[i], other.ids[i], i, ErrMisalignedIDs,
			)
		}
	}

	left, lok := fs.vec.(vectorizer.Enumerable)
	right, rok := other.vec.(vectorizer.Enumerable)
	if !lok || !rok {
		return nil, fmt.Errorf("dictionary vectorizer cannot enumerate its vocabulary: %w", ErrIncompatibleVectorizer)
	}
	leftNames := left.FeatureNames()
	rightNames := right.FeatureNames()
	known := make(map[string]struct{}, len(leftNames))
	for _, name := range leftNames {
		known[name] = struct{}{}
	}
	for _, name := range rightNames {
		if _, exists := known[name]; exists {
			return nil, fmt.Errorf("feature %q exists in both sets: %w", name, ErrDuplicateFeatureName)
		}
	}

	classes, err := reconcileClasses(fs.classes, other.classes)
	if err != nil {
		return nil, err
	}

	feats, err := sparse.HStack(fs.feats, other.feats)
	if err != nil {
		return nil, fmt.Errorf("stacking feature matrices: %w", err)
	}

	// Right columns follow the left block, so the merged vocabulary is the
	// left names followed by the right names in their original orders.
	vec, err := vectorizer.NewDictVectorizerFromNames(append(leftNames, rightNames...))
	if err != nil {
		return nil, fmt.Errorf("building merged vocabulary: %w", err)
	}

	return New(fs.IDs(), classes, feats, vec)
}

// reconcileClasses merges the label columns of two aligned operands. An
// unlabeled side adopts the other side's labels wholesale; when both sides
// carry labels, every position must agree or be unset on both.
func reconcileClasses(left, right []Class) ([]Class, error) {
	leftHas := anyValid(left)
	rightHas := anyValid(right)

	switch {
	case leftHas && rightHas:
		for i := range left {
			if !left[i].Equal(right[i]) {
				return nil, fmt.Errorf(
					"label %q vs %q at position %d: %w",
					left[i], right[i], i, ErrConflictingLabels,
				)
			}
		}
		return append([]Class(nil), left...), nil
	case rightHas:
		return append([]Class(nil), right...), nil
	default:
		return append([]Class(nil), left...), nil
	}
}

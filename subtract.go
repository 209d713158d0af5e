package skll

import "github.com/alvations-all/skll/vectorizer"

// Subtract returns a deep copy of the set with every feature column whose
// name appears in the other set's vocabulary removed. Neither operand is
// mutated. When the other set's vectorizer cannot enumerate a vocabulary
// (the hashing variant) there are no names to subtract and a plain copy is
// returned.
func (fs *FeatureSet) Subtract(other *FeatureSet) *FeatureSet {
	out := fs.Copy()
	if other == nil {
		return out
	}
	en, ok := other.vec.(vectorizer.Enumerable)
	if !ok {
		return out
	}
	out.Filter(FilterOptions{Features: en.FeatureNames(), Inverse: true})
	return out
}

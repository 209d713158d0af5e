package skll

import (
	"sort"

	"github.com/alvations-all/skll/vectorizer"
)

// FilterOptions selects examples and feature columns for Filter and
// FilteredIter. A nil list disables that test entirely.
//
// An example is dropped when its id is in IDs or its class is in Classes;
// it survives only by passing both tests. Features names the columns to
// keep. Inverse flips both senses: listed examples are kept instead of
// dropped, and listed columns are dropped instead of kept. Inverse has no
// effect on the example mask when neither IDs nor Classes is given.
type FilterOptions struct {
	IDs      []string
	Classes  []string
	Features []string
	Inverse  bool
}

// Filter removes examples and feature columns from the set in place,
// preserving the relative order of survivors. Feature names that do not
// resolve through the vectorizer are silently ignored, and a Features list
// is ignored entirely when the vectorizer cannot enumerate its columns
// (the hashing variant), since dropping hashed columns would break the
// name mapping for every remaining column.
func (fs *FeatureSet) Filter(opt FilterOptions) {
	if fs.feats == nil {
		return
	}

	mask := fs.rowMask(opt)
	ids := make([]string, 0, len(fs.ids))
	classes := make([]Class, 0, len(fs.classes))
	for i, keep := range mask {
		if keep {
			ids = append(ids, fs.ids[i])
			classes = append(classes, fs.classes[i])
		}
	}
	feats := fs.feats.SelectRows(mask)

	if cols, ok := fs.filterColumns(opt); ok {
		feats = feats.SelectColumns(cols)
		en := fs.vec.(vectorizer.Enumerable)
		names := make([]string, 0, len(cols))
		for _, c := range cols {
			if name, ok := en.FeatureName(c); ok {
				names = append(names, name)
			}
		}
		// Surviving names keep their relative order, so this cannot fail.
		vec, err := vectorizer.NewDictVectorizerFromNames(names)
		if err == nil {
			fs.vec = vec
		}
	}

	fs.ids = ids
	fs.classes = classes
	fs.feats = feats
}

// rowMask builds the boolean example selector for the given options.
func (fs *FeatureSet) rowMask(opt FilterOptions) []bool {
	dropIDs := make(map[string]struct{}, len(opt.IDs))
	for _, id := range opt.IDs {
		dropIDs[id] = struct{}{}
	}
	dropClasses := make(map[string]struct{}, len(opt.Classes))
	for _, c := range opt.Classes {
		dropClasses[c] = struct{}{}
	}

	mask := make([]bool, len(fs.ids))
	for i := range mask {
		keep := true
		if opt.IDs != nil {
			if _, drop := dropIDs[fs.ids[i]]; drop {
				keep = false
			}
		}
		if opt.Classes != nil && fs.classes[i].Valid {
			if _, drop := dropClasses[fs.classes[i].Value]; drop {
				keep = false
			}
		}
		mask[i] = keep
	}

	if opt.Inverse && (opt.IDs != nil || opt.Classes != nil) {
		for i := range mask {
			mask[i] = !mask[i]
		}
	}
	return mask
}

// filterColumns resolves the Features option to the final list of columns
// to keep, in ascending order. The second return reports whether a column
// filter applies at all.
func (fs *FeatureSet) filterColumns(opt FilterOptions) ([]int, bool) {
	if opt.Features == nil {
		return nil, false
	}
	en, ok := fs.vec.(vectorizer.Enumerable)
	if !ok {
		return nil, false
	}

	selected := make(map[int]struct{}, len(opt.Features))
	for _, name := range opt.Features {
		if idx, ok := en.FeatureIndex(name); ok {
			selected[idx] = struct{}{}
		}
	}

	var cols []int
	if opt.Inverse {
		for j := 0; j < fs.NumFeatures(); j++ {
			if _, drop := selected[j]; !drop {
				cols = append(cols, j)
			}
		}
		return cols, true
	}
	for idx := range selected {
		cols = append(cols, idx)
	}
	sort.Ints(cols)
	return cols, true
}

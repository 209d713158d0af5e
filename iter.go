package skll

import "iter"

// Example is one (id, class, feature row) triple yielded during iteration.
// The feature row is a dense copy owned by the receiver of the yield.
type Example struct {
	ID       string
	Class    Class
	Features []float64
}

// All iterates over every example in order. A placeholder set yields
// nothing.
func (fs *FeatureSet) All() iter.Seq[Example] {
	return fs.FilteredIter(FilterOptions{})
}

// FilteredIter iterates over the examples selected by opt without mutating
// the set, applying the same example mask and column selection as Filter.
// When no Features filter is given, rows are yielded in full. The sequence
// is restartable; filter resolution happens once per traversal, at its
// start. The set must not be filtered in place while a traversal is
// running.
func (fs *FeatureSet) FilteredIter(opt FilterOptions) iter.Seq[Example] {
	return func(yield func(Example) bool) {
		if fs.feats == nil {
			return
		}
		mask := fs.rowMask(opt)
		cols, filtered := fs.filterColumns(opt)

		for i, keep := range mask {
			if !keep {
				continue
			}
			row := fs.feats.RowDense(i)
			if filtered {
				sliced := make([]float64, len(cols))
				for j, c := range cols {
					sliced[j] = row[c]
				}
				row = sliced
			}
			ex := Example{
				ID:       fs.ids[i],
				Class:    fs.classes[i],
				Features: row,
			}
			if !yield(ex) {
				return
			}
		}
	}
}

// Package vectorizer maps feature names to columns of a feature matrix.
// Two variants exist: the dictionary variant keeps an exact, enumerable
// vocabulary, while the hashing variant maps names through a fixed-width
// hash and cannot name its columns.
package vectorizer

// Variant identifies how a vectorizer resolves feature names.
type Variant int

const (
	// Dictionary vectorizers hold an exact name to index vocabulary.
	Dictionary Variant = iota
	// Hashing vectorizers map names through a fixed-width hash.
	Hashing
)

// Vectorizer resolves feature names to column indices of the matrix it
// produced.
type Vectorizer interface {
	// Variant reports which resolution strategy this vectorizer uses.
	Variant() Variant
	// NumFeatures returns the declared column count.
	NumFeatures() int
	// FeatureIndex returns the column index for a feature name and whether
	// the name resolves at all.
	FeatureIndex(name string) (int, bool)
}

// Enumerable is implemented by vectorizers whose columns are individually
// nameable, which is the dictionary variant only.
type Enumerable interface {
	Vectorizer
	// FeatureNames returns all known names in column order.
	FeatureNames() []string
	// FeatureName returns the name of column i.
	FeatureName(i int) (string, bool)
}

package vectorizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/alvations-all/skll/sparse"
)

var ErrDuplicateName = errors.New("duplicate feature name")

// DictVectorizer converts feature maps to sparse vectors using an exact
// name to column vocabulary. String values become one-hot "name=value"
// features; numeric and bool values keep their key and contribute their
// value.
type DictVectorizer struct {
	names []string
	index map[string]int
}

// NewDictVectorizer creates an empty DictVectorizer to be populated with
// Fit or FitTransform.
func NewDictVectorizer() *DictVectorizer {
	return &DictVectorizer{index: make(map[string]int)}
}

// NewDictVectorizerFromNames builds a vectorizer over an explicit column
// ordering. Fails if any name repeats.
func NewDictVectorizerFromNames(names []string) (*DictVectorizer, error) {
	dv := &DictVectorizer{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(dv.names, names)
	for i, name := range dv.names {
		if _, exists := dv.index[name]; exists {
			return nil, fmt.Errorf("feature %q appears more than once: %w", name, ErrDuplicateName)
		}
		dv.index[name] = i
	}
	return dv, nil
}

// Fit builds the vocabulary from a list of feature maps. Names are sorted
// for a deterministic column order.
func (dv *DictVectorizer) Fit(samples []map[string]any) {
	seen := make(map[string]struct{})
	for _, sample := range samples {
		for k, v := range sample {
			seen[featureKey(k, v)] = struct{}{}
		}
	}

	dv.names = make([]string, 0, len(seen))
	for name := range seen {
		dv.names = append(dv.names, name)
	}
	sort.Strings(dv.names)

	dv.index = make(map[string]int, len(dv.names))
	for i, name := range dv.names {
		dv.index[name] = i
	}
}

// Transform converts a single feature map to a sparse vector. Names
// outside the vocabulary are dropped.
func (dv *DictVectorizer) Transform(sample map[string]any) sparse.Vector {
	sv := sparse.NewVector(len(dv.names))
	for k, v := range sample {
		if idx, ok := dv.index[featureKey(k, v)]; ok {
			sv.Set(idx, featureValue(v))
		}
	}
	return sv
}

// FitTransform fits the vocabulary and transforms every sample.
func (dv *DictVectorizer) FitTransform(samples []map[string]any) []sparse.Vector {
	dv.Fit(samples)
	out := make([]sparse.Vector, len(samples))
	for i, sample := range samples {
		out[i] = dv.Transform(sample)
	}
	return out
}

// Variant reports the dictionary strategy.
func (dv *DictVectorizer) Variant() Variant {
	return Dictionary
}

// NumFeatures returns the vocabulary size.
func (dv *DictVectorizer) NumFeatures() int {
	return len(dv.names)
}

// FeatureIndex returns the column index of a feature name.
func (dv *DictVectorizer) FeatureIndex(name string) (int, bool) {
	idx, ok := dv.index[name]
	return idx, ok
}

// FeatureName returns the name of column i.
func (dv *DictVectorizer) FeatureName(i int) (string, bool) {
	if i < 0 || i >= len(dv.names) {
		return "", false
	}
	return dv.names[i], true
}

// FeatureNames returns all known names in column order.
func (dv *DictVectorizer) FeatureNames() []string {
	names := make([]string, len(dv.names))
	copy(names, dv.names)
	return names
}

// Copy returns a deep copy of the vectorizer.
func (dv *DictVectorizer) Copy() *DictVectorizer {
	out, _ := NewDictVectorizerFromNames(dv.names)
	return out
}

// MarshalJSON encodes the vocabulary as its ordered name list.
func (dv *DictVectorizer) MarshalJSON() ([]byte, error) {
	return json.Marshal(dv.names)
}

// UnmarshalJSON rebuilds the vocabulary from an ordered name list.
func (dv *DictVectorizer) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	next, err := NewDictVectorizerFromNames(names)
	if err != nil {
		return err
	}
	*dv = *next
	return nil
}

// featureKey derives the vocabulary key for a name and value pair. String
// values get compound "name=value" keys, everything else keys on the name.
func featureKey(name string, value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%s=%s", name, v)
	default:
		return name
	}
}

// featureValue derives the numeric cell value for a feature value.
func featureValue(value any) float64 {
	switch v := value.(type) {
	case bool:
		if v {
			return 1.0
		}
		return 0.0
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 1.0
	}
}

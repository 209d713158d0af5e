// Package dataio reads and writes feature sets in line-oriented example
// formats: jsonlines, LibSVM, and CSV. Readers fit a dictionary vectorizer
// over the parsed examples and hand the result to the feature-set
// construction contract; writers require a vectorizer that can name its
// columns.
package dataio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alvations-all/skll"
	"github.com/alvations-all/skll/sparse"
	"github.com/alvations-all/skll/vectorizer"
	"github.com/goccy/go-json"
)

var (
	ErrUnnamedColumns = errors.New("feature set's vectorizer cannot name its columns")
	ErrMalformedLine  = errors.New("malformed example line")
)

// maxLineBytes bounds a single example line when scanning line-oriented
// formats.
const maxLineBytes = 16 * 1024 * 1024

// jsonExample is the wire shape of one jsonlines example.
type jsonExample struct {
	ID string         `json:"id"`
	Y  *string        `json:"y,omitempty"`
	X  map[string]any `json:"x"`
}

// ReadJSONLines reads one JSON object per line, each holding an example id,
// an optional label y, and a feature map x. Blank lines are skipped. The
// returned set carries a dictionary vectorizer fitted over all feature
// maps.
func ReadJSONLines(r io.Reader) (*skll.FeatureSet, error) {
	var (
		ids     []string
		classes []skll.Class
		samples []map[string]any
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ex jsonExample
		if err := json.Unmarshal([]byte(line), &ex); err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", lineNum, err, ErrMalformedLine)
		}
		ids = append(ids, ex.ID)
		if ex.Y != nil {
			classes = append(classes, skll.NewClass(*ex.Y))
		} else {
			classes = append(classes, skll.Class{})
		}
		if ex.X == nil {
			ex.X = map[string]any{}
		}
		samples = append(samples, ex.X)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	dv := vectorizer.NewDictVectorizer()
	vecs := dv.FitTransform(samples)
	feats, err := sparse.FromVectors(vecs, dv.NumFeatures())
	if err != nil {
		return nil, err
	}
	return skll.New(ids, classes, feats, dv)
}

// WriteJSONLines writes one JSON object per example holding its id,
// label (omitted when unset), and the map of non-zero feature values.
// Fails when the set's vectorizer cannot name its columns.
func WriteJSONLines(w io.Writer, fs *skll.FeatureSet) error {
	en, ok := fs.Vectorizer().(vectorizer.Enumerable)
	if !ok {
		return ErrUnnamedColumns
	}

	bw := bufio.NewWriter(w)
	feats := fs.Features()
	ids := fs.IDs()
	classes := fs.Classes()
	for i := range ids {
		x := make(map[string]any)
		if feats != nil {
			indices, values := feats.RowNonZero(i)
			for j, c := range indices {
				name, ok := en.FeatureName(c)
				if !ok {
					continue
				}
				x[name] = values[j]
			}
		}
		ex := jsonExample{ID: ids[i], X: x}
		if classes[i].Valid {
			y := classes[i].Value
			ex.Y = &y
		}
		out, err := json.Marshal(ex)
		if err != nil {
			return err
		}
		if _, err := bw.Write(out); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

package dataio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alvations-all/skll"
	"github.com/alvations-all/skll/sparse"
	"github.com/alvations-all/skll/vectorizer"
)

// ReadLibSVM reads examples in LibSVM format: a label followed by
// one-based "index:value" pairs, optionally trailed by "# id". Lines with
// a "-" label are treated as unlabeled, and a missing id comment falls
// back to the one-based line position. Column names in the resulting
// dictionary vectorizer are the decimal one-based indices.
func ReadLibSVM(r io.Reader) (*skll.FeatureSet, error) {
	var (
		ids     []string
		classes []skll.Class
	)

	type row struct {
		indices []int
		values  []float64
	}
	var parsed []row
	maxIndex := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id := fmt.Sprintf("%d", len(ids)+1)
		if pos := strings.Index(line, "#"); pos >= 0 {
			if comment := strings.TrimSpace(line[pos+1:]); comment != "" {
				id = comment
			}
			line = strings.TrimSpace(line[:pos])
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, fmt.Errorf("line %d has no label: %w", lineNum, ErrMalformedLine)
		}

		if fields[0] == "-" {
			classes = append(classes, skll.Class{})
		} else {
			classes = append(classes, skll.NewClass(fields[0]))
		}
		ids = append(ids, id)

		var cur row
		for _, field := range fields[1:] {
			idxStr, valStr, found := strings.Cut(field, ":")
			if !found {
				return nil, fmt.Errorf("line %d: %q is not index:value: %w", lineNum, field, ErrMalformedLine)
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 1 {
				return nil, fmt.Errorf("line %d: bad feature index %q: %w", lineNum, idxStr, ErrMalformedLine)
			}
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad feature value %q: %w", lineNum, valStr, ErrMalformedLine)
			}
			cur.indices = append(cur.indices, idx-1)
			cur.values = append(cur.values, val)
			if idx > maxIndex {
				maxIndex = idx
			}
		}
		parsed = append(parsed, cur)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	vecs := make([]sparse.Vector, len(parsed))
	for i, p := range parsed {
		vecs[i] = sparse.Vector{Indices: p.indices, Values: p.values, Dim: maxIndex}
	}
	feats, err := sparse.FromVectors(vecs, maxIndex)
	if err != nil {
		return nil, err
	}

	names := make([]string, maxIndex)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}
	dv, err := vectorizer.NewDictVectorizerFromNames(names)
	if err != nil {
		return nil, err
	}
	return skll.New(ids, classes, feats, dv)
}

// WriteLibSVM writes examples in LibSVM format with one-based feature
// indices and a "# id" comment per line. Unlabeled examples get a "-"
// label.
func WriteLibSVM(w io.Writer, fs *skll.FeatureSet) error {
	bw := bufio.NewWriter(w)
	feats := fs.Features()
	ids := fs.IDs()
	classes := fs.Classes()
	for i := range ids {
		label := "-"
		if classes[i].Valid {
			label = classes[i].Value
		}
		if _, err := bw.WriteString(label); err != nil {
			return err
		}
		if feats != nil {
			// column indices are already sorted within a CSR row
			indices, values := feats.RowNonZero(i)
			for j := range indices {
				if _, err := fmt.Fprintf(bw, " %d:%v", indices[j]+1, values[j]); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintf(bw, " # %s\n", ids[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alvations-all/skll"
	"github.com/alvations-all/skll/sparse"
	"github.com/alvations-all/skll/vectorizer"
)

// csv files lead with an "id" and a "y" column; the remaining header
// fields are feature names.
const (
	csvIDColumn    = "id"
	csvClassColumn = "y"
)

// ReadCSV reads examples from a CSV file whose header is "id,y,<feature
// names...>". An empty y cell marks an unlabeled example and empty feature
// cells read as zero.
func ReadCSV(r io.Reader) (*skll.FeatureSet, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 || header[0] != csvIDColumn || header[1] != csvClassColumn {
		return nil, fmt.Errorf("header must start with %q,%q: %w", csvIDColumn, csvClassColumn, ErrMalformedLine)
	}
	names := header[2:]

	var (
		ids     []string
		classes []skll.Class
		rows    [][]float64
	)
	lineNum := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lineNum++
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d has %d fields, want %d: %w", lineNum, len(record), len(header), ErrMalformedLine)
		}

		ids = append(ids, record[0])
		if record[1] == "" {
			classes = append(classes, skll.Class{})
		} else {
			classes = append(classes, skll.NewClass(record[1]))
		}

		row := make([]float64, len(names))
		for j, cell := range record[2:] {
			if cell == "" {
				continue
			}
			val, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q for feature %q: %w", lineNum, cell, names[j], ErrMalformedLine)
			}
			row[j] = val
		}
		rows = append(rows, row)
	}

	feats, err := sparse.FromDense(rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// FromDense cannot infer a width without rows
		feats, err = sparse.FromVectors(nil, len(names))
		if err != nil {
			return nil, err
		}
	}
	dv, err := vectorizer.NewDictVectorizerFromNames(names)
	if err != nil {
		return nil, err
	}
	return skll.New(ids, classes, feats, dv)
}

// WriteCSV writes examples as CSV with an "id,y,<feature names...>"
// header. Fails when the set's vectorizer cannot name its columns.
func WriteCSV(w io.Writer, fs *skll.FeatureSet) error {
	en, ok := fs.Vectorizer().(vectorizer.Enumerable)
	if !ok {
		return ErrUnnamedColumns
	}

	cw := csv.NewWriter(w)
	names := en.FeatureNames()
	header := append([]string{csvIDColumn, csvClassColumn}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	feats := fs.Features()
	ids := fs.IDs()
	classes := fs.Classes()
	for i := range ids {
		record := make([]string, 2, len(header))
		record[0] = ids[i]
		if classes[i].Valid {
			record[1] = classes[i].Value
		}
		if feats != nil {
			for _, val := range feats.RowDense(i) {
				record = append(record, strconv.FormatFloat(val, 'g', -1, 64))
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

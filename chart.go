package skll

import (
	"fmt"
	"sort"

	"github.com/alvations-all/skll/vectorizer"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// BarClassDistribution generates an echart bar chart of the number of
// examples per class value. Unlabeled examples are grouped under their own
// bucket.
func BarClassDistribution(title string, fs *FeatureSet) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	counts := make(map[string]int)
	unlabeled := 0
	for _, c := range fs.Classes() {
		if !c.Valid {
			unlabeled++
			continue
		}
		counts[c.Value]++
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	barData := make([]opts.BarData, 0, len(values)+1)
	for _, v := range values {
		barData = append(barData, opts.BarData{Name: v, Value: counts[v]})
	}
	if unlabeled > 0 {
		values = append(values, "unlabeled")
		barData = append(barData, opts.BarData{Name: "unlabeled", Value: unlabeled})
	}

	bar.SetXAxis(values).AddSeries("examples", barData)
	return bar
}

// BarFeatureDensity generates an echart bar chart of the non-zero fraction
// of each feature column. Columns are labeled by name when the vectorizer
// can enumerate them and by index otherwise.
func BarFeatureDensity(title string, fs *FeatureSet) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	n := fs.Len()
	nonZero := make([]int, fs.NumFeatures())
	if fs.Features() != nil {
		for i := 0; i < n; i++ {
			indices, values := fs.Features().RowNonZero(i)
			for j, c := range indices {
				if values[j] != 0 {
					nonZero[c]++
				}
			}
		}
	}

	en, enumerable := fs.Vectorizer().(vectorizer.Enumerable)
	labels := make([]string, len(nonZero))
	barData := make([]opts.BarData, len(nonZero))
	for c := range nonZero {
		labels[c] = fmt.Sprintf("col_%d", c)
		if enumerable {
			if name, ok := en.FeatureName(c); ok {
				labels[c] = name
			}
		}
		density := 0.0
		if n > 0 {
			density = float64(nonZero[c]) / float64(n)
		}
		barData[c] = opts.BarData{Name: labels[c], Value: density}
	}

	bar.SetXAxis(labels).AddSeries("density", barData)
	return bar
}

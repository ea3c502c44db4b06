package vector

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// EuclideanDistance returns the L2 distance between a and b, which must have equal length.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// sortResults orders results by ascending distance, breaking ties by lowest position.
func sortResults(results []*VectorResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Position < results[j].Position
	})
}

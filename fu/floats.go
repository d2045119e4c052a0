package fu

import (
	"math"
	"sort"
)

/*
Median returns the median of a, averaging the two middle values for an even count.
a is not modified.
*/
func Median(a []float64) float64 {
	if len(a) == 0 {
		return math.NaN()
	}
	b := make([]float64, len(a))
	copy(b, a)
	sort.Float64s(b)
	n := len(b) / 2
	if len(b)%2 == 1 {
		return b[n]
	}
	return (b[n-1] + b[n]) / 2
}

// Indmaxd returns index of the first maximal value, -1 for empty slice
func Indmaxd(a []float64) int {
	j := -1
	for i, x := range a {
		if j < 0 || x > a[j] {
			j = i
		}
	}
	return j
}

// Fnzi returns the first non-zero value
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

func Mini(a int, b ...int) int {
	for _, x := range b {
		if x < a {
			a = x
		}
	}
	return a
}

func Maxi(a int, b ...int) int {
	for _, x := range b {
		if x > a {
			a = x
		}
	}
	return a
}

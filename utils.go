package sensordash

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Float | constraints.Integer
}

// Linspace returns n evenly spaced values over [start, end], inclusive of both
// ends. The last value is pinned to end so accumulated rounding never leaves
// the axis short of its range.
func Linspace[T constraints.Float](start, end T, n int) []T {
	if n <= 0 {
		return []T{}
	}

	if n == 1 {
		return []T{start}
	}

	step := (end - start) / T(n-1)
	values := make([]T, n)
	for i := range values {
		values[i] = start + T(i)*step
	}
	values[n-1] = end

	return values
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}

	return sum / float64(len(values))
}

func Constant[T Number](value T, n int) []T {
	values := make([]T, n)
	for i := range values {
		values[i] = value
	}

	return values
}

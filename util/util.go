package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) int {
	var total int
	for _, v := range nums {
		total += int(v)
	}
	return total
}

// Ratio is num/den as a float, 0 when den is 0.
func Ratio[A constraints.Integer](num, den A) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

package model

import "math"

// MinGap returns the smallest column-wise value of lower-upper.
func MinGap(upper, lower []int) int {
	gap := math.MaxInt
	for x := range upper {
		if d := lower[x] - upper[x]; d < gap {
			gap = d
		}
	}

	return gap
}

// ShiftRow adds delta to every column of row.
func ShiftRow(row []int, delta int) {
	for x := range row {
		row[x] += delta
	}
}

// ClampRows clamps every value of rows[first:last] to [lo, hi].
func ClampRows(rows [][]int, first, last, lo, hi int) {
	for i := max(first, 0); i < min(last, len(rows)); i++ {
		for x, v := range rows[i] {
			rows[i][x] = min(max(v, lo), hi)
		}
	}
}

// IsMonotonic reports whether rows never decrease from one row to the next
// at any column.
func IsMonotonic(rows [][]int) bool {
	for i := 1; i < len(rows); i++ {
		if MinGap(rows[i-1], rows[i]) < 0 {
			return false
		}
	}

	return true
}

// Boundaries reports whether the first row is all zeros and the last row is
// all ny.
func Boundaries(rows [][]int, ny int) bool {
	if len(rows) < 2 {
		return false
	}
	for x := range rows[0] {
		if rows[0][x] != 0 || rows[len(rows)-1][x] != ny {
			return false
		}
	}

	return true
}

// Package textmatch provides the similarity measure used for fuzzy todo
// resolution. The measure is pinned here as a pure function because the
// resolver's tie-breaking depends on its exact values.
package textmatch

// Ratio returns a similarity score between a and b in [0, 1] based on
// normalized Levenshtein edit distance: 1 - dist/max(len). It is symmetric
// (Ratio(a, b) == Ratio(b, a)) and compares runes, not bytes. Two empty
// strings are identical and score 1. Callers that want case-insensitive
// scoring must lowercase their inputs first.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}

	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}

	return 1 - float64(distance(ra, rb))/float64(longest)
}

// distance computes the Levenshtein edit distance between two rune slices
// using a single rolling row.
func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			insert := row[j-1] + 1
			remove := row[j] + 1
			replace := prev
			if a[i-1] != b[j-1] {
				replace++
			}

			prev = row[j]
			row[j] = min3(insert, remove, replace)
		}
	}

	return row[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

package normalize

// EditDistance returns the Levenshtein distance between two strings: the
// minimum number of single-character insertions, deletions, and
// substitutions turning one into the other. The result is non-negative,
// symmetric, and satisfies the triangle inequality. Comparison is
// byte-exact; callers lowercase first when they want case-insensitivity.
// This is the single edit-distance routine for the whole engine — fuzzy
// candidate search and diff classification both use it.
func EditDistance(a, b string) int {
	n, m := len(a), len(b)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	// Single-row DP over b.
	row := make([]int, m+1)
	for j := 0; j <= m; j++ {
		row[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = next
		}
	}
	return row[m]
}

// SimilarityRatio maps edit distance into [0,1] relative to the longer
// string. Two empty strings are fully similar.
func SimilarityRatio(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(EditDistance(a, b))/float64(longest)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

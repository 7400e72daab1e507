package typoutil

import "strings"

// DamerauLevenshteinDistance computes the edit distance between two strings counting
// insertions, deletions, substitutions and adjacent transpositions as one edit each.
// Runes are compared, so multi-byte characters count as a single position.
func DamerauLevenshteinDistance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// matrix[i][j] is the distance between the first i runes of a and the first j runes of b.
	matrix := make([][]int, lenA+1)
	for i := range matrix {
		matrix[i] = make([]int, lenB+1)
	}
	for i := 0; i <= lenA; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost
			matrix[i][j] = min(deletion, insertion, substitution)

			if i > 1 && j > 1 &&
				runesA[i-1] == runesB[j-2] &&
				runesA[i-2] == runesB[j-1] {
				if transposition := matrix[i-2][j-2] + cost; transposition < matrix[i][j] {
					matrix[i][j] = transposition
				}
			}
		}
	}

	return matrix[lenA][lenB]
}

// ClosestMatch returns the candidate nearest to term (case-insensitive) when it lies
// within maxDistance edits. Ties go to the earlier candidate. ok is false when no
// candidate is close enough.
func ClosestMatch(term string, candidates []string, maxDistance int) (match string, ok bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return "", false
	}

	best := maxDistance + 1
	for _, candidate := range candidates {
		d := DamerauLevenshteinDistance(term, strings.ToLower(candidate))
		if d < best {
			best = d
			match = candidate
		}
	}
	return match, best <= maxDistance
}

package pricelist

import "strings"

// DescriptionSimilarity scores how alike two part descriptions are, as a
// percentage in [0, 100]. Comparison is case-insensitive and whitespace-
// trimmed; the score is a normalized Levenshtein ratio. Two empty
// descriptions score 100, one empty side scores 0.
func DescriptionSimilarity(a, b string) float64 {
	an := strings.ToLower(strings.TrimSpace(a))
	bn := strings.ToLower(strings.TrimSpace(b))
	if an == bn {
		return 100
	}
	if an == "" || bn == "" {
		return 0
	}

	dist := levenshteinDistance(an, bn)
	denom := len([]rune(an))
	if l := len([]rune(bn)); l > denom {
		denom = l
	}
	ratio := 1 - float64(dist)/float64(denom)
	if ratio < 0 {
		ratio = 0
	}
	return round2(ratio * 100)
}

func levenshteinDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) < len(br) {
		ar, br = br, ar
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ar {
		curr := make([]int, len(br)+1)
		curr[0] = i + 1
		for j, cb := range br {
			ins := curr[j] + 1
			del := prev[j+1] + 1
			sub := prev[j]
			if ca != cb {
				sub++
			}
			curr[j+1] = min3(ins, del, sub)
		}
		prev = curr
	}
	return prev[len(prev)-1]
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		return c
	}
	return a
}

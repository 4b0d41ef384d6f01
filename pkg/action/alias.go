package action

import "strings"

// Score computes the alias-match score the pipeline uses to resolve a
// free-text target against a candidate item/NPC name and alias list:
// +10 for an exact case-insensitive name match, +6 if any alias matches,
// up to +4 of context bonus, and -2 if the closest Levenshtein distance
// to the name or any alias exceeds 2.
func Score(query, name string, aliases []string, ctxBonus int) int {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(name)

	score := 0
	if q == n {
		score += 10
	}

	for _, a := range aliases {
		if strings.ToLower(a) == q {
			score += 6
			break
		}
	}

	if ctxBonus > 4 {
		ctxBonus = 4
	}
	score += ctxBonus

	minDist := levenshtein(q, n)
	for _, a := range aliases {
		if d := levenshtein(q, strings.ToLower(a)); d < minDist {
			minDist = d
		}
	}
	if minDist > 2 {
		score -= 2
	}

	return score
}

// candidate pairs a score with the item it was computed for, so resolution
// can apply the top-score/gap rule without recomputing.
type candidate struct {
	item  Item
	score int
}

// ResolveInventory picks the best-matching inventory item for query: the
// top candidate is accepted only if its score is at least 20 and the gap
// to the second-best candidate is at least 10; otherwise the match is
// ambiguous and resolution fails.
func ResolveInventory(query string, items []Item) (Item, bool) {
	if len(items) == 0 {
		return Item{}, false
	}
	// Carried items are always maximally in-context for the player, so
	// resolution scores them with the full +4 context bonus — reaching
	// the 20-point bar takes both a name match and an alias match.
	scored := make([]candidate, 0, len(items))
	for _, it := range items {
		scored = append(scored, candidate{item: it, score: Score(query, it.Name, it.Aliases, 4)})
	}
	best := scored[0]
	for _, c := range scored[1:] {
		if c.score > best.score {
			best = c
		}
	}
	if best.score < 20 {
		return Item{}, false
	}
	secondBest := -1 << 31
	for _, c := range scored {
		if c.item.ID == best.item.ID {
			continue
		}
		if c.score > secondBest {
			secondBest = c.score
		}
	}
	if secondBest > -1<<31 && best.score-secondBest < 10 {
		return Item{}, false
	}
	return best.item, true
}

// levenshtein computes the edit distance between two strings using the
// standard single-row DP (no library — this is a pure four-line
// primitive, not worth pulling a dependency for).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr := make([]int, len(rb)+1)
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[len(rb)]
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

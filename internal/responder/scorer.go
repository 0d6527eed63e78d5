package responder

// Score computes how well tokens match a rule, as an integer percentage.
//
// Every token found in the rule's recognized set counts once per occurrence,
// so repeated words can push the score above 100. The result is truncated
// toward zero. A rule whose required words are not all present scores 0
// unless it always scores.
func Score(tokens []string, r *Rule) int {
	matches := 0
	for _, t := range tokens {
		if r.recognizes(t) {
			matches++
		}
	}

	coverage := float64(matches) / float64(len(r.recognized))

	if !hasRequired(tokens, r.required) && !r.alwaysScore {
		return 0
	}
	return int(coverage * 100)
}

// hasRequired reports whether every required word occurs in tokens
func hasRequired(tokens, required []string) bool {
	for _, word := range required {
		if !contains(tokens, word) {
			return false
		}
	}
	return true
}

func contains(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

package responder

// MinScore is the lowest winning score that selects a rule. Anything below
// it yields the fallback.
const MinScore = 1

// RuleScore is one entry of a score table
type RuleScore struct {
	Rule  string `json:"rule"`
	Score int    `json:"score"`
}

// ScoreTable holds the scores of every rule for one utterance, in rule order
type ScoreTable []RuleScore

// Selection is the outcome of scoring one token sequence
type Selection struct {
	Scores   ScoreTable
	Winner   *Rule // nil when the fallback was chosen
	Score    int   // best score, even when below MinScore
	Fallback bool
}

// Select scores every rule and picks the first one with the highest score.
// When the best score is below MinScore the selection is a fallback.
func Select(tokens []string, rules []*Rule) Selection {
	sel := Selection{Scores: make(ScoreTable, 0, len(rules))}

	best := -1
	for _, r := range rules {
		score := Score(tokens, r)
		sel.Scores = append(sel.Scores, RuleScore{Rule: r.name, Score: score})

		// Strictly greater keeps the earliest rule on ties
		if score > best {
			best = score
			sel.Winner = r
		}
	}

	if best < MinScore {
		sel.Winner = nil
		sel.Fallback = true
		if best < 0 {
			best = 0
		}
	}
	sel.Score = best

	return sel
}

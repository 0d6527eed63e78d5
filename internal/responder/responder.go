// Package responder picks a canned response for a free-text utterance.
//
// An utterance is tokenized, every rule is scored on how many of its
// recognized words appear, and the best rule's response is returned. When no
// rule scores at least MinScore the fallback text is used instead.
//
// A Responder holds no mutable state and is safe for concurrent use.
package responder

// Result explains how a response was chosen
type Result struct {
	Tokens   []string   `json:"tokens"`
	Scores   ScoreTable `json:"scores"`
	Rule     string     `json:"rule,omitempty"`
	Score    int        `json:"score"`
	Fallback bool       `json:"fallback"`
	Response string     `json:"response"`
}

// Responder dispatches utterances against an ordered rule table
type Responder struct {
	rules    []*Rule
	fallback Text
}

// New creates a Responder. Rules are scored in the given order, which also
// decides ties.
func New(rules []*Rule, fallback Text) *Responder {
	if fallback == nil {
		fallback = Literal("")
	}
	return &Responder{
		rules:    append([]*Rule(nil), rules...),
		fallback: fallback,
	}
}

// Respond returns the response for one utterance
func (r *Responder) Respond(utterance string) string {
	return r.Explain(utterance).Response
}

// Explain returns the response for one utterance along with the tokens and
// the score of every rule.
func (r *Responder) Explain(utterance string) Result {
	tokens := Tokenize(utterance)
	sel := Select(tokens, r.rules)

	res := Result{
		Tokens:   tokens,
		Scores:   sel.Scores,
		Score:    sel.Score,
		Fallback: sel.Fallback,
	}
	if sel.Fallback {
		res.Response = r.fallback()
		return res
	}

	res.Rule = sel.Winner.Name()
	res.Response = sel.Winner.Response()
	return res
}

// Rules returns the rule table in scoring order
func (r *Responder) Rules() []*Rule {
	return append([]*Rule(nil), r.rules...)
}

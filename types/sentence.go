package types

import "math"

type SentenceAttributes struct {
	// Score is the log joint probability of the decoded path.
	Score    float64
	HasScore bool
}

type Sentence struct {
	Index      int
	Tokens     []*Token
	Attributes SentenceAttributes
}

func (sent *Sentence) Forms() []string {
	forms := make([]string, len(sent.Tokens))
	for i, token := range sent.Tokens {
		forms[i] = token.GetForm()
	}
	return forms
}

func (sent *Sentence) SetScore(score float64) {
	if math.IsInf(score, 0) || math.IsNaN(score) {
		sent.Attributes.HasScore = false
		return
	}
	sent.Attributes.Score = score
	sent.Attributes.HasScore = true
}

// TaggedSentence is a token sequence paired with its gold tags.
type TaggedSentence struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"tags"`
}

func (s TaggedSentence) Len() int {
	return len(s.Tokens)
}

package evaluation

import (
	"errors"
	"fmt"
)

var ErrEmptyEvaluation = errors.New("nothing to evaluate")

type Scores struct {
	// Sentence is the share of sentences tagged without a single mistake.
	Sentence float64 `json:"sentence_accuracy"`
	// Token is the share of correct tags over all tokens.
	Token     float64 `json:"token_accuracy"`
	Sentences int     `json:"sentences"`
	Tokens    int     `json:"tokens"`
}

// Evaluate compares predicted tag sequences to gold ones position by position.
func Evaluate(golds [][]string, preds [][]string) (Scores, error) {
	if len(golds) != len(preds) {
		return Scores{}, fmt.Errorf("got %d gold and %d predicted sentences", len(golds), len(preds))
	}

	var scores Scores
	correctSentences, correctTokens := 0, 0
	for i, gold := range golds {
		pred := preds[i]
		if len(gold) != len(pred) {
			return Scores{}, fmt.Errorf("sentence %d has %d gold and %d predicted tags", i, len(gold), len(pred))
		}

		correct := 0
		for j := range gold {
			if gold[j] == pred[j] {
				correct++
			}
		}
		if correct == len(gold) {
			correctSentences++
		}
		correctTokens += correct
		scores.Sentences++
		scores.Tokens += len(gold)
	}

	if scores.Sentences == 0 || scores.Tokens == 0 {
		return Scores{}, ErrEmptyEvaluation
	}

	scores.Sentence = float64(correctSentences) / float64(scores.Sentences)
	scores.Token = float64(correctTokens) / float64(scores.Tokens)
	return scores, nil
}

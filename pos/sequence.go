package pos

import "math"

type Sequence struct {
	// Score is the log joint probability of the path including the final
	// transition to Stop, -Inf when the model gives the sentence no path.
	Score    float64
	Outcomes []string
	// Probs holds P(tag|previous) * P(token|tag) for each position.
	Probs []float64
}

func (seq Sequence) IsPossible() bool {
	return !math.IsInf(seq.Score, -1)
}

// Prob is the joint probability, it may underflow to 0 for long sentences.
func (seq Sequence) Prob() float64 {
	return math.Exp(seq.Score)
}

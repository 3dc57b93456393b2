package pos

import (
	"text2phenotype.com/hmmtagger/types"
	"math"
)

// NewTagger binds a model and a decoding method into a function tagging
// pipeline tokens by their lookup form.
func NewTagger(model *Model, method Method) func(tokens []*types.Token) Sequence {
	return func(tokens []*types.Token) Sequence {
		forms := make([]string, len(tokens))
		for i, token := range tokens {
			forms[i] = token.GetForm()
		}

		// greedy tags carry no path score
		if method == MethodGreedy {
			return Sequence{Score: math.NaN(), Outcomes: model.MostLikely(forms)}
		}
		return model.Viterbi(forms)
	}
}

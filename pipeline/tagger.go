package pipeline

import (
	"text2phenotype.com/hmmtagger/pos"
	"text2phenotype.com/hmmtagger/types"
	"text2phenotype.com/hmmtagger/utils"
	"sync"
)

type Tagger func(in <-chan types.Sentence, method pos.Method, withBaseline bool) <-chan types.Sentence

// NewPOSTagger decodes every sentence in its own goroutine. Sentences leave the
// stage in completion order, Sentence.Index keeps the document order.
func NewPOSTagger(model *pos.Model) Tagger {
	viterbi := pos.NewTagger(model, pos.MethodViterbi)
	greedy := pos.NewTagger(model, pos.MethodGreedy)

	return func(in <-chan types.Sentence, method pos.Method, withBaseline bool) <-chan types.Sentence {
		tagger := viterbi
		if method == pos.MethodGreedy {
			tagger = greedy
		}

		out := make(chan types.Sentence)
		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {

				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					if len(sent.Tokens) > 0 {
						seq := tagger(sent.Tokens)
						sent.SetScore(seq.Score)
						for i, tag := range seq.Outcomes {
							sent.Tokens[i].Tag = utils.GlobalStringStore().GetPointer(tag)
							if i < len(seq.Probs) {
								sent.Tokens[i].Prob = seq.Probs[i]
							}
						}

						if withBaseline {
							baseline := greedy(sent.Tokens)
							for i, tag := range baseline.Outcomes {
								sent.Tokens[i].Baseline = utils.GlobalStringStore().GetPointer(tag)
							}
						}
					}
					out <- sent
				}(sent)

			}

			wg.Wait()
		}()
		return out
	}
}

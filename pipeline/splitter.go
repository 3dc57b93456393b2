package pipeline

import (
	"text2phenotype.com/hmmtagger/types"
	"sync"
)

// NewSentenceChannelSplitter copies every sentence to n channels. Each channel
// gets its own token copies, so configurations can tag them independently.
func NewSentenceChannelSplitter(n int) func(in <-chan types.Sentence) []chan types.Sentence {

	return func(in <-chan types.Sentence) []chan types.Sentence {
		outs := make([]chan types.Sentence, n)
		// init channels
		for i := 0; i < n; i++ {
			outs[i] = make(chan types.Sentence)
		}

		go func() {
			defer closeAllChannels(outs)
			var wg sync.WaitGroup

			for sent := range in {
				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					for _, out := range outs {
						out <- cloneSentence(sent)
					}
				}(sent)

			}

			wg.Wait()
		}()
		return outs
	}
}

func cloneSentence(sent types.Sentence) types.Sentence {
	tokens := make([]*types.Token, len(sent.Tokens))
	for i, token := range sent.Tokens {
		clone := token.Clone()
		tokens[i] = &clone
	}
	sent.Tokens = tokens
	return sent
}

func closeAllChannels(outs []chan types.Sentence) {
	for _, out := range outs {
		close(out)
	}
}

package pipeline

import (
	"text2phenotype.com/hmmtagger/pos"
	"text2phenotype.com/hmmtagger/types"
	"sort"
)

type Result struct {
	ConfigName string
	Data       interface{}
}

func NewTaggingResult() func(in <-chan types.Sentence, cfg types.Configuration, request Request, method pos.Method) <-chan Result {
	return func(in <-chan types.Sentence, cfg types.Configuration, request Request, method pos.Method) <-chan Result {
		out := make(chan Result)
		go func() {
			defer close(out)
			withScores := cfg.CheckFeature(types.ScoresFeature)
			withBaseline := cfg.CheckFeature(types.BaselineFeature)

			response := types.TaggingResponse{
				DocId:     request.DocId,
				Method:    string(method),
				Sentences: make([]types.SentenceSection, 0, len(request.Sentences)),
			}
			for sent := range in {
				section := types.SentenceSection{
					Id:     sent.Index,
					Tokens: make([]types.TaggedToken, len(sent.Tokens)),
				}
				for i, token := range sent.Tokens {
					tagged := types.TaggedToken{Text: *token.Text}
					if token.Tag != nil {
						tagged.Tag = *token.Tag
					}
					if withBaseline && token.Baseline != nil {
						tagged.Baseline = *token.Baseline
					}
					if withScores && method == pos.MethodViterbi {
						prob := token.Prob
						tagged.Prob = &prob
					}
					section.Tokens[i] = tagged
				}
				if withScores && sent.Attributes.HasScore {
					score := sent.Attributes.Score
					section.Score = &score
				}
				response.Sentences = append(response.Sentences, section)
			}

			sort.Slice(response.Sentences, func(i, j int) bool {
				return response.Sentences[i].Id < response.Sentences[j].Id
			})

			out <- Result{
				ConfigName: cfg.Name,
				Data:       response,
			}
		}()
		return out
	}
}

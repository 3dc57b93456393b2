package pipeline

import (
	"text2phenotype.com/hmmtagger/types"
	"fmt"
	"golang.org/x/text/unicode/norm"
	"strings"
)

// NewUnicodeNormalizer sets the lookup form of every token to its Unicode
// normal form. The token text is kept as sent.
func NewUnicodeNormalizer(normalization string) (func(in <-chan types.Sentence) <-chan types.Sentence, error) {
	var form norm.Form
	switch strings.ToLower(normalization) {
	case types.NormalizationNone:
		return func(in <-chan types.Sentence) <-chan types.Sentence {
			return in
		}, nil
	case types.NormalizationNFC:
		form = norm.NFC
	case types.NormalizationNFKC:
		form = norm.NFKC
	default:
		return nil, fmt.Errorf("unsupported normalization %q", normalization)
	}

	return func(in <-chan types.Sentence) <-chan types.Sentence {
		out := make(chan types.Sentence)
		go func() {
			defer close(out)
			for sent := range in {
				for _, token := range sent.Tokens {
					if token.Text != nil && !form.IsNormalString(*token.Text) {
						token.Form = form.String(*token.Text)
					}
				}
				out <- sent
			}
		}()
		return out
	}, nil
}

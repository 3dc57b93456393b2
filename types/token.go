package types

type Token struct {
	Text     *string
	Form     string
	Tag      *string
	Baseline *string
	Prob     float64
}

// GetForm returns the text used for model lookups.
func (token *Token) GetForm() string {
	if len(token.Form) > 0 {
		return token.Form
	}
	return *token.Text
}

func (token Token) Clone() Token {
	return Token{
		Text:     token.Text,
		Form:     token.Form,
		Tag:      token.Tag,
		Baseline: token.Baseline,
		Prob:     token.Prob,
	}
}

func NewTokens(words []string) []*Token {
	tokens := make([]*Token, len(words))
	for i := range words {
		word := words[i]
		tokens[i] = &Token{Text: &word}
	}
	return tokens
}

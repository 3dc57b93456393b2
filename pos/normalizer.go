package pos

// Normalize returns a copy of tokens where every token missing from the
// vocabulary is replaced by the Unknown symbol.
func (m *Model) Normalize(tokens []string) []string {
	res := make([]string, len(tokens))
	for i, token := range tokens {
		if m.Vocabulary.Contains(token) {
			res[i] = token
			continue
		}
		res[i] = Unknown
	}
	return res
}

package pos

// MostLikely tags every token with the tag it was seen with most often in
// training, ignoring context. Ties go to the tag that comes first in the tag
// set. Tokens never seen in training get the literal Unknown symbol.
func (m *Model) MostLikely(tokens []string) []string {
	res := make([]string, len(tokens))
	for i, token := range tokens {
		res[i] = m.mostLikelyTag(token)
	}
	return res
}

func (m *Model) mostLikelyTag(token string) string {
	counts, ok := m.TokenTags.Lookup(token)
	if !ok {
		return Unknown
	}

	best, bestCount := Unknown, 0
	for i := 0; i < m.Tags.Len(); i++ {
		tag := m.Tags.At(i)
		if count := counts[tag]; count > bestCount {
			best, bestCount = tag, count
		}
	}
	return best
}

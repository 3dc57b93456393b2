package pos

import (
	"text2phenotype.com/hmmtagger/types"
	"errors"
	"fmt"
)

var (
	ErrNoTrainingData = errors.New("no training data")
	ErrLengthMismatch = errors.New("tokens and tags differ in length")
	ErrReservedTag    = errors.New("tag collides with a reserved symbol")
)

// Fit estimates a first-order HMM from tagged sentences. Every call builds a
// fresh model, nothing is shared with previously fitted models.
func Fit(sentences []types.TaggedSentence) (*Model, error) {
	if len(sentences) == 0 {
		return nil, ErrNoTrainingData
	}

	vocabulary := make(Vocabulary)
	tokenTags := make(FrequencyTable)
	var tags []string
	seenTags := make(map[string]bool)

	for i, sent := range sentences {
		if len(sent.Tokens) != len(sent.Tags) {
			return nil, fmt.Errorf(
				"sentence %d has %d tokens and %d tags: %w",
				i, len(sent.Tokens), len(sent.Tags), ErrLengthMismatch,
			)
		}
		for j, token := range sent.Tokens {
			tag := sent.Tags[j]
			if tag == Start || tag == Stop {
				return nil, fmt.Errorf("sentence %d, position %d, tag %q: %w", i, j, tag, ErrReservedTag)
			}
			if !seenTags[tag] {
				seenTags[tag] = true
				tags = append(tags, tag)
			}
			vocabulary[token]++
			tokenTags.add(token, tag)
		}
	}

	if len(vocabulary) == 0 {
		return nil, ErrNoTrainingData
	}

	transitions := make(countTable)
	emissions := make(countTable)
	for _, sent := range sentences {
		prev := Start
		for j, token := range sent.Tokens {
			tag := sent.Tags[j]
			transitions.add(prev, tag)

			emissions.add(tag, token)
			// rare tokens also feed the unknown bucket, so it learns what
			// rare words look like for each tag
			if vocabulary.IsRare(token) {
				emissions.add(tag, Unknown)
			}
			prev = tag
		}
		transitions.add(prev, Stop)
	}

	return &Model{
		Tags:        NewTagSet(tags),
		Vocabulary:  vocabulary,
		Transitions: transitions.normalize(),
		Emissions:   emissions.normalize(),
		TokenTags:   tokenTags,
	}, nil
}

package pipeline

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseRequest(t *testing.T) {
	t.Run("Plain document", func(t *testing.T) {
		request, err := ParseRequest("tid", []byte(`{"sentences": [["the", "dog"]]}`), nil)
		require.NoError(t, err)
		require.Equal(t, "tid", request.Tid)
		require.Equal(t, "tid", request.DocId)
		require.Equal(t, [][]string{{"the", "dog"}}, request.Sentences)
		require.Empty(t, request.Method)
	})

	t.Run("Defaults are merged", func(t *testing.T) {
		defaults := []byte(`{"method": "greedy", "configurations": ["default"]}`)
		request, err := ParseRequest("tid", []byte(`{"doc_id": "doc", "sentences": [], "method": "viterbi"}`), defaults)
		require.NoError(t, err)
		require.Equal(t, "doc", request.DocId)
		require.Equal(t, "viterbi", request.Method)
		require.Equal(t, []string{"default"}, request.Configurations)
		require.Empty(t, request.Sentences)
	})

	t.Run("Null removes a default", func(t *testing.T) {
		defaults := []byte(`{"method": "greedy"}`)
		request, err := ParseRequest("tid", []byte(`{"sentences": [], "method": null}`), defaults)
		require.NoError(t, err)
		require.Empty(t, request.Method)
	})

	t.Run("Invalid documents", func(t *testing.T) {
		_, err := ParseRequest("tid", []byte(`{"method": "viterbi"}`), nil)
		require.True(t, errors.Is(err, ErrNoSentences))

		_, err = ParseRequest("tid", []byte(`{"sentences": [], "method": "beam"}`), nil)
		require.Error(t, err)

		_, err = ParseRequest("tid", []byte(`not json`), nil)
		require.Error(t, err)

		_, err = ParseRequest("tid", []byte(`{"sentences": "the dog"}`), nil)
		require.Error(t, err)
	})
}

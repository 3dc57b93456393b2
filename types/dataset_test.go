package types

import (
	"github.com/stretchr/testify/require"
	"math"
	"strings"
	"testing"
)

func TestReadDataset(t *testing.T) {
	dataset, err := ReadDataset(strings.NewReader(`[
		{"tokens": ["Han", "løb"], "tags": ["PRON", "VERB"]},
		{"tokens": ["."], "tags": ["PUNCT"]}
	]`))
	require.NoError(t, err)
	require.Len(t, dataset, 2)
	require.Equal(t, 2, dataset[0].Len())
	require.Equal(t, [][]string{{"Han", "løb"}, {"."}}, dataset.Tokens())
	require.Equal(t, [][]string{{"PRON", "VERB"}, {"PUNCT"}}, dataset.Tags())

	_, err = ReadDataset(strings.NewReader(`{"tokens": []}`))
	require.Error(t, err)
}

func TestSentence(t *testing.T) {
	sent := Sentence{Tokens: NewTokens([]string{"Han", "løb"})}
	sent.Tokens[0].Form = "han"
	require.Equal(t, []string{"han", "løb"}, sent.Forms())

	clone := sent.Tokens[1].Clone()
	clone.Form = "x"
	require.Empty(t, sent.Tokens[1].Form)
	require.True(t, clone.Text == sent.Tokens[1].Text)

	sent.SetScore(-1.5)
	require.True(t, sent.Attributes.HasScore)
	sent.SetScore(math.Inf(-1))
	require.False(t, sent.Attributes.HasScore)
}

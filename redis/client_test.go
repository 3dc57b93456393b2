package redis

import (
	"encoding/json"
	"github.com/stretchr/testify/require"
	"testing"
)

type statusDoc struct {
	Name   string   `json:"name"`
	Done   *string  `json:"done,omitempty"`
	Count  int      `json:"count"`
	Labels []string `json:"labels,omitempty"`
}

const storedDoc = `{"name": "a", "done": "t1", "count": 2, "labels": ["x"], "owner": "sequencer"}`

func TestMergeDocument(t *testing.T) {
	t.Run("Cleared field is removed", func(t *testing.T) {
		var doc statusDoc
		merged, err := MergeDocument([]byte(storedDoc), &doc, func() {
			doc.Done = nil
		})
		require.NoError(t, err)
		require.JSONEq(t, `{"name": "a", "count": 2, "labels": ["x"], "owner": "sequencer"}`, string(merged))

		var reread statusDoc
		require.NoError(t, json.Unmarshal(merged, &reread))
		require.Nil(t, reread.Done)
	})

	t.Run("Changed fields are written, unknown keys kept", func(t *testing.T) {
		var doc statusDoc
		merged, err := MergeDocument([]byte(storedDoc), &doc, func() {
			doc.Count++
			doc.Labels = append(doc.Labels, "y")
		})
		require.NoError(t, err)
		require.JSONEq(t,
			`{"name": "a", "done": "t1", "count": 3, "labels": ["x", "y"], "owner": "sequencer"}`,
			string(merged),
		)
	})

	t.Run("Empty fields missing from the store stay missing", func(t *testing.T) {
		var doc statusDoc
		merged, err := MergeDocument([]byte(`{"name": "b", "owner": "sequencer"}`), &doc, func() {
			doc.Name = "c"
		})
		require.NoError(t, err)
		require.JSONEq(t, `{"name": "c", "owner": "sequencer"}`, string(merged))
	})

	t.Run("Without update", func(t *testing.T) {
		var doc statusDoc
		merged, err := MergeDocument([]byte(storedDoc), &doc, nil)
		require.NoError(t, err)
		require.JSONEq(t, storedDoc, string(merged))
		require.Equal(t, 2, doc.Count)
	})

	t.Run("Invalid document", func(t *testing.T) {
		var doc statusDoc
		_, err := MergeDocument([]byte(`not json`), &doc, func() {
			t.Fatal("update must not run on an invalid document")
		})
		require.Error(t, err)
	})
}

package api

import (
	"text2phenotype.com/hmmtagger/pipeline"
	"bytes"
	"encoding/json"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

// echoPipeline answers with the request it was given.
func echoPipeline(received *[]pipeline.Request) pipeline.Pipeline {
	return func(request pipeline.Request) <-chan string {
		*received = append(*received, request)
		ch := make(chan string, 1)
		buf, _ := json.Marshal(request)
		ch <- string(buf)
		close(ch)
		return ch
	}
}

func TestProcessData(t *testing.T) {
	t.Run("Tags posted document", func(t *testing.T) {
		var received []pipeline.Request
		handler := &Request{Pipeline: echoPipeline(&received)}

		rec := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"sentences": [["the", "dog"]], "method": "greedy"}`)
		handler.ProcessData(rec, httptest.NewRequest(http.MethodPost, "/", body))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.Len(t, received, 1)
		require.Equal(t, [][]string{{"the", "dog"}}, received[0].Sentences)
		require.Equal(t, "greedy", received[0].Method)
		require.Equal(t, "api-1", received[0].Tid)
		require.Equal(t, "api-1", received[0].DocId)

		var echoed pipeline.Request
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &echoed))
		require.Equal(t, received[0], echoed)
	})

	t.Run("Request ids are unique", func(t *testing.T) {
		var received []pipeline.Request
		handler := &Request{Pipeline: echoPipeline(&received)}
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ProcessData(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"sentences": []}`)))
			require.Equal(t, http.StatusOK, rec.Code)
		}
		require.Equal(t, "api-1", received[0].Tid)
		require.Equal(t, "api-3", received[2].Tid)
	})

	t.Run("Defaults are merged", func(t *testing.T) {
		var received []pipeline.Request
		handler := &Request{
			Pipeline: echoPipeline(&received),
			Defaults: []byte(`{"method": "greedy", "configurations": ["baseline"]}`),
		}
		rec := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"sentences": [["a"]], "method": "viterbi"}`)
		handler.ProcessData(rec, httptest.NewRequest(http.MethodPost, "/", body))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "viterbi", received[0].Method)
		require.Equal(t, []string{"baseline"}, received[0].Configurations)
	})

	t.Run("Only POST", func(t *testing.T) {
		var received []pipeline.Request
		handler := &Request{Pipeline: echoPipeline(&received)}
		rec := httptest.NewRecorder()
		handler.ProcessData(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		require.Empty(t, received)
	})

	t.Run("Invalid document", func(t *testing.T) {
		var received []pipeline.Request
		handler := &Request{Pipeline: echoPipeline(&received)}
		for _, body := range []string{`not json`, `{"text": "raw"}`, `{"sentences": [["a"]], "method": "beam"}`} {
			rec := httptest.NewRecorder()
			handler.ProcessData(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		require.Empty(t, received)
	})

	t.Run("Closed pipeline", func(t *testing.T) {
		handler := &Request{Pipeline: func(request pipeline.Request) <-chan string {
			ch := make(chan string)
			close(ch)
			return ch
		}}
		rec := httptest.NewRecorder()
		handler.ProcessData(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"sentences": []}`)))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

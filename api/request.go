package api

import (
	"text2phenotype.com/hmmtagger/pipeline"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync/atomic"
)

type Request struct {
	Pipeline pipeline.Pipeline
	// Defaults is a JSON document every request body is merged onto.
	Defaults []byte

	counter atomic.Uint64
}

func (req *Request) nextTid() string {
	return fmt.Sprintf("api-%d", req.counter.Add(1))
}

func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := ioutil.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request, err := pipeline.ParseRequest(req.nextTid(), msg, req.Defaults)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Invalid request document")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Info().Str("tid", request.Tid).Msg("Starting pipeline for request from API")
	resp, ok := <-req.Pipeline(request)
	if !ok {
		logger.Error().Str("tid", request.Tid).Int("status", http.StatusInternalServerError).
			Msg("Pipeline returned no response")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}

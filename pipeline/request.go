package pipeline

import (
	"text2phenotype.com/hmmtagger/pos"
	"encoding/json"
	"errors"
	"fmt"
	jsonpatch "github.com/evanphx/json-patch"
)

var ErrNoSentences = errors.New("request has no sentences")

// Request is a pre-tokenized document. Method and Configurations are optional,
// without them every loaded configuration tags with its own method.
type Request struct {
	Tid            string     `json:"tid"`
	DocId          string     `json:"doc_id"`
	Sentences      [][]string `json:"sentences"`
	Method         string     `json:"method,omitempty"`
	Configurations []string   `json:"configurations,omitempty"`
}

// ParseRequest reads a request document. When defaults is not empty the
// document is merged onto it, so the caller only sends what differs.
func ParseRequest(tid string, raw []byte, defaults []byte) (Request, error) {
	var request Request
	doc := raw
	if len(defaults) > 0 {
		merged, err := jsonpatch.MergePatch(defaults, raw)
		if err != nil {
			return request, fmt.Errorf("failed to apply request defaults: %w", err)
		}
		doc = merged
	}

	if err := json.Unmarshal(doc, &request); err != nil {
		return request, fmt.Errorf("failed to decode request: %w", err)
	}
	if request.Sentences == nil {
		return request, ErrNoSentences
	}
	if len(request.Method) > 0 {
		if _, err := pos.ParseMethod(request.Method); err != nil {
			return request, err
		}
	}

	request.Tid = tid
	if len(request.DocId) == 0 {
		request.DocId = tid
	}
	return request, nil
}

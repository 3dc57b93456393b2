package types

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type Dataset []TaggedSentence

func ReadDataset(r io.Reader) (Dataset, error) {
	var dataset Dataset
	if err := json.NewDecoder(r).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return dataset, nil
}

func LoadDatasetFromFile(filePath string) (Dataset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadDataset(f)
}

func (dataset Dataset) Tokens() [][]string {
	res := make([][]string, len(dataset))
	for i, sent := range dataset {
		res[i] = sent.Tokens
	}
	return res
}

func (dataset Dataset) Tags() [][]string {
	res := make([][]string, len(dataset))
	for i, sent := range dataset {
		res[i] = sent.Tags
	}
	return res
}

package pos

import (
	"text2phenotype.com/hmmtagger/types"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"strings"
)

const (
	Start   = "_START_"
	Stop    = "_STOP_"
	Unknown = "UNK"

	// RarityThreshold is the training count below which a token also counts
	// towards the Unknown emission of its tag.
	RarityThreshold = 2

	probTolerance = 1e-6
)

type Method string

const (
	MethodGreedy  Method = types.MethodGreedy
	MethodViterbi Method = types.MethodViterbi
)

// ParseMethod accepts "viterbi", "greedy" and its alias "most_likely"; an
// empty string selects Viterbi.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", types.MethodViterbi:
		return MethodViterbi, nil
	case types.MethodGreedy, "most_likely":
		return MethodGreedy, nil
	}
	return "", fmt.Errorf("unknown decoding method %q", s)
}

// Model is a trained first-order HMM. It is read-only after Fit and safe for
// concurrent decoding.
type Model struct {
	Tags        TagSet           `json:"tags"`
	Vocabulary  Vocabulary       `json:"vocabulary"`
	Transitions ConditionalTable `json:"transitions"`
	Emissions   ConditionalTable `json:"emissions"`
	TokenTags   FrequencyTable   `json:"token_tags"`
}

func (m *Model) Decode(tokens []string, method Method) ([]string, error) {
	switch method {
	case MethodViterbi:
		return m.Viterbi(tokens).Outcomes, nil
	case MethodGreedy:
		return m.MostLikely(tokens), nil
	}
	return nil, fmt.Errorf("unknown decoding method %q", method)
}

// DecodeAll tags every sentence with the same method.
func (m *Model) DecodeAll(sentences [][]string, method Method) ([][]string, error) {
	res := make([][]string, len(sentences))
	for i, tokens := range sentences {
		tags, err := m.Decode(tokens, method)
		if err != nil {
			return nil, err
		}
		res[i] = tags
	}
	return res, nil
}

// Validate checks that the model can be decoded with: a non empty tag set and
// vocabulary, a Start row, an emission row per tag and rows of both tables
// summing to 1.
func (m *Model) Validate() error {
	if m.Tags.Len() == 0 {
		return fmt.Errorf("model has no tags")
	}
	if len(m.Vocabulary) == 0 {
		return fmt.Errorf("model has an empty vocabulary")
	}
	for _, tag := range m.Tags.Tags() {
		if len(m.Emissions[tag]) == 0 {
			return fmt.Errorf("tag %s has no emissions", tag)
		}
	}
	if len(m.Transitions[Start]) == 0 {
		return fmt.Errorf("model has no transitions from %s", Start)
	}
	if err := validateTable("transition", m.Transitions); err != nil {
		return err
	}
	return validateTable("emission", m.Emissions)
}

func validateTable(name string, table ConditionalTable) error {
	for given, dist := range table {
		for outcome, p := range dist {
			if p < 0 || p > 1 || math.IsNaN(p) {
				return fmt.Errorf("%s probability %s -> %s is out of range: %v", name, given, outcome, p)
			}
		}
		if sum := dist.Sum(); math.Abs(sum-1) > probTolerance {
			return fmt.Errorf("%s distribution of %s sums to %v", name, given, sum)
		}
	}
	return nil
}

func ReadModel(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	return &m, nil
}

func LoadModelFromFile(modelFilePath string) (*Model, error) {
	f, err := os.Open(modelFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadModel(f)
}

func (m *Model) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(m)
}

func (m *Model) SaveToFile(modelFilePath string) error {
	buf, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(modelFilePath, buf, 0644)
}

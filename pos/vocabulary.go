package pos

import (
	"encoding/json"
	"sort"
)

// Vocabulary holds every training token with its occurrence count.
type Vocabulary map[string]int

func (v Vocabulary) Contains(token string) bool {
	_, ok := v[token]
	return ok
}

// Count returns 0 for tokens never seen in training.
func (v Vocabulary) Count(token string) int {
	return v[token]
}

func (v Vocabulary) IsRare(token string) bool {
	return v[token] < RarityThreshold
}

// TagSet is the closed set of training tags in a fixed lexicographic order.
// Decoder tables are indexed by position in this order.
type TagSet struct {
	tags  []string
	index map[string]int
}

func NewTagSet(tags []string) TagSet {
	uniq := make(map[string]struct{}, len(tags))
	sorted := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := uniq[tag]; ok {
			continue
		}
		uniq[tag] = struct{}{}
		sorted = append(sorted, tag)
	}
	sort.Strings(sorted)

	index := make(map[string]int, len(sorted))
	for i, tag := range sorted {
		index[tag] = i
	}
	return TagSet{tags: sorted, index: index}
}

func (ts TagSet) Len() int {
	return len(ts.tags)
}

func (ts TagSet) At(i int) string {
	return ts.tags[i]
}

func (ts TagSet) Index(tag string) (int, bool) {
	i, ok := ts.index[tag]
	return i, ok
}

// Tags returns a copy of the ordered tags.
func (ts TagSet) Tags() []string {
	res := make([]string, len(ts.tags))
	copy(res, ts.tags)
	return res
}

func (ts TagSet) MarshalJSON() ([]byte, error) {
	if ts.tags == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ts.tags)
}

func (ts *TagSet) UnmarshalJSON(b []byte) error {
	var tags []string
	if err := json.Unmarshal(b, &tags); err != nil {
		return err
	}
	*ts = NewTagSet(tags)
	return nil
}

package pos

import "sort"

// Distribution maps an outcome to its probability. Outcomes that are not
// present have probability 0.
type Distribution map[string]float64

func (d Distribution) Prob(outcome string) float64 {
	return d[outcome]
}

// Sum adds the probabilities in key order so the result does not depend on
// map iteration.
func (d Distribution) Sum() float64 {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sum := 0.0
	for _, k := range keys {
		sum += d[k]
	}
	return sum
}

// ConditionalTable maps a conditioning symbol to a distribution over outcomes:
// previous tag -> next tag for transitions, tag -> token for emissions.
type ConditionalTable map[string]Distribution

// Prob returns P(outcome | given), 0 for pairs never observed.
func (t ConditionalTable) Prob(given string, outcome string) float64 {
	return t[given].Prob(outcome)
}

// FrequencyTable holds raw token -> tag co-occurrence counts.
type FrequencyTable map[string]map[string]int

// Lookup reports the tag counts of a token and whether the token was seen.
func (f FrequencyTable) Lookup(token string) (map[string]int, bool) {
	counts, ok := f[token]
	return counts, ok && len(counts) > 0
}

func (f FrequencyTable) add(token string, tag string) {
	counts, ok := f[token]
	if !ok {
		counts = make(map[string]int)
		f[token] = counts
	}
	counts[tag]++
}

// countTable accumulates integer counts before normalization.
type countTable map[string]map[string]int

func (c countTable) add(given string, outcome string) {
	row, ok := c[given]
	if !ok {
		row = make(map[string]int)
		c[given] = row
	}
	row[outcome]++
}

// normalize divides every count by its row total. Totals are integers, so the
// probabilities are identical for identical counts.
func (c countTable) normalize() ConditionalTable {
	table := make(ConditionalTable, len(c))
	for given, row := range c {
		total := 0
		for _, count := range row {
			total += count
		}
		if total == 0 {
			continue
		}
		dist := make(Distribution, len(row))
		for outcome, count := range row {
			dist[outcome] = float64(count) / float64(total)
		}
		table[given] = dist
	}
	return table
}

package pos

import "math"

func logProb(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}

// lattice caches log probabilities indexed by tag set position for one decode.
type lattice struct {
	start []float64   // log P(tag | Start)
	stop  []float64   // log P(Stop | tag)
	trans [][]float64 // trans[prev][next] = log P(next | prev)
}

func (m *Model) newLattice() lattice {
	n := m.Tags.Len()
	l := lattice{
		start: make([]float64, n),
		stop:  make([]float64, n),
		trans: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		tag := m.Tags.At(i)
		l.start[i] = logProb(m.Transitions.Prob(Start, tag))
		l.stop[i] = logProb(m.Transitions.Prob(tag, Stop))
		l.trans[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			l.trans[i][j] = logProb(m.Transitions.Prob(tag, m.Tags.At(j)))
		}
	}
	return l
}

func (m *Model) emissionLogProbs(token string, dst []float64) {
	for i := range dst {
		dst[i] = logProb(m.Emissions.Prob(m.Tags.At(i), token))
	}
}

// Viterbi returns the most probable tag sequence for tokens under the model.
// Tokens outside the vocabulary are decoded as Unknown. Every state keeps its
// own best predecessor, ties (including all-impossible columns) are resolved
// in favour of the lowest tag set index.
func (m *Model) Viterbi(tokens []string) Sequence {
	n := len(tokens)
	if n == 0 {
		return Sequence{Outcomes: []string{}, Probs: []float64{}}
	}

	obs := m.Normalize(tokens)
	k := m.Tags.Len()
	if k == 0 {
		return unknownSequence(n)
	}
	l := m.newLattice()

	score := make([][]float64, n)
	back := make([][]int, n)
	emission := make([]float64, k)

	score[0] = make([]float64, k)
	back[0] = make([]int, k)
	m.emissionLogProbs(obs[0], emission)
	for t := 0; t < k; t++ {
		score[0][t] = l.start[t] + emission[t]
	}

	for i := 1; i < n; i++ {
		score[i] = make([]float64, k)
		back[i] = make([]int, k)
		m.emissionLogProbs(obs[i], emission)
		for t := 0; t < k; t++ {
			best, arg := math.Inf(-1), 0
			for p := 0; p < k; p++ {
				if s := score[i-1][p] + l.trans[p][t]; s > best {
					best, arg = s, p
				}
			}
			score[i][t] = best + emission[t]
			back[i][t] = arg
		}
	}

	best, last := math.Inf(-1), 0
	for t := 0; t < k; t++ {
		if s := score[n-1][t] + l.stop[t]; s > best {
			best, last = s, t
		}
	}

	path := make([]int, n)
	path[n-1] = last
	for i := n - 1; i > 0; i-- {
		path[i-1] = back[i][path[i]]
	}

	seq := Sequence{
		Score:    best,
		Outcomes: make([]string, n),
		Probs:    make([]float64, n),
	}
	prev := Start
	for i, t := range path {
		tag := m.Tags.At(t)
		seq.Outcomes[i] = tag
		seq.Probs[i] = m.Transitions.Prob(prev, tag) * m.Emissions.Prob(tag, obs[i])
		prev = tag
	}
	return seq
}

func unknownSequence(n int) Sequence {
	seq := Sequence{
		Score:    math.Inf(-1),
		Outcomes: make([]string, n),
		Probs:    make([]float64, n),
	}
	for i := range seq.Outcomes {
		seq.Outcomes[i] = Unknown
	}
	return seq
}

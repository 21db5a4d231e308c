package quiz

import (
	"fmt"
	"math"
)

type Answer struct {
	Text   string  `json:"text"`
	Chakra Chakra  `json:"chakra"`
	State  State   `json:"state"`
	Weight float64 `json:"weight"`
}

type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Order       int      `json:"order"`
	MultiSelect bool     `json:"multiSelect"`
	Answers     []Answer `json:"answers"`
}

// Weighting selects how much a chosen answer adds to its bucket.
type Weighting int

const (
	// AuthoredWeights adds the magnitude of the answer's own weight.
	AuthoredWeights Weighting = iota
	// FixedWeights adds 0.5 for stable answers and 1.0 otherwise.
	FixedWeights
)

func ParseWeighting(s string) (Weighting, error) {
	switch s {
	case "", "authored":
		return AuthoredWeights, nil
	case "fixed":
		return FixedWeights, nil
	}
	return AuthoredWeights, fmt.Errorf("unknown quiz weighting %q", s)
}

func (w Weighting) weigh(a Answer) float64 {
	if w == FixedWeights {
		if a.State == Stable {
			return 0.5
		}
		return 1.0
	}
	return math.Abs(a.Weight)
}

type Scores struct {
	Excess  float64 `json:"excess"`
	Deficit float64 `json:"deficit"`
	Stable  float64 `json:"stable"`
}

func (s Scores) Total() float64 { return s.Excess + s.Deficit + s.Stable }

// Dominant resolves the bucket sums to one state. Ties between a directional
// state and stable go to the directional state.
func (s Scores) Dominant() State {
	switch {
	case s.Excess > s.Deficit && s.Excess >= s.Stable:
		return Excess
	case s.Deficit > s.Excess && s.Deficit >= s.Stable:
		return Deficit
	default:
		return Stable
	}
}

func (s *Scores) add(state State, w float64) {
	switch state {
	case Excess:
		s.Excess += w
	case Deficit:
		s.Deficit += w
	case Stable:
		s.Stable += w
	}
}

type ChakraResult struct {
	Chakra        Chakra  `json:"chakra"`
	DominantState State   `json:"dominantState"`
	TotalScore    float64 `json:"totalScore"`
	Scores        Scores  `json:"scores"`
}

type Result struct {
	StableChakras []ChakraResult `json:"stableChakras"`
	OverChakras   []ChakraResult `json:"overChakras"`
	UnderChakras  []ChakraResult `json:"underChakras"`
}

// All returns every scored chakra, root to crown.
func (r Result) All() []ChakraResult {
	out := make([]ChakraResult, 0, len(r.StableChakras)+len(r.OverChakras)+len(r.UnderChakras))
	for _, c := range Chakras {
		for _, group := range [][]ChakraResult{r.OverChakras, r.UnderChakras, r.StableChakras} {
			for _, cr := range group {
				if cr.Chakra == c {
					out = append(out, cr)
				}
			}
		}
	}
	return out
}

type options struct {
	weighting Weighting
}

type Option func(*options)

func WithWeighting(w Weighting) Option {
	return func(o *options) { o.weighting = w }
}

// Score classifies each chakra that received at least one vote. selections[q]
// holds the answer indices chosen for questions[q]; missing or empty entries
// contribute nothing. An index outside the question's answers panics; use
// Validate first on untrusted input.
func Score(questions []Question, selections [][]int, opts ...Option) Result {
	o := options{weighting: AuthoredWeights}
	for _, opt := range opts {
		opt(&o)
	}

	acc := make(map[Chakra]*Scores, len(Chakras))
	for q, chosen := range selections {
		if q >= len(questions) {
			panic(fmt.Sprintf("quiz: selection for question %d but only %d questions", q, len(questions)))
		}
		for _, a := range chosen {
			answer := questions[q].Answers[a]
			s, ok := acc[answer.Chakra]
			if !ok {
				s = &Scores{}
				acc[answer.Chakra] = s
			}
			s.add(answer.State, o.weighting.weigh(answer))
		}
	}

	res := Result{
		StableChakras: []ChakraResult{},
		OverChakras:   []ChakraResult{},
		UnderChakras:  []ChakraResult{},
	}
	for _, c := range Chakras {
		s, ok := acc[c]
		if !ok || s.Total() <= 0 {
			continue
		}
		cr := ChakraResult{Chakra: c, DominantState: s.Dominant(), TotalScore: s.Total(), Scores: *s}
		switch cr.DominantState {
		case Excess:
			res.OverChakras = append(res.OverChakras, cr)
		case Deficit:
			res.UnderChakras = append(res.UnderChakras, cr)
		default:
			res.StableChakras = append(res.StableChakras, cr)
		}
	}
	return res
}

// Validate checks that selections fit the question list.
func Validate(questions []Question, selections [][]int) error {
	if len(selections) > len(questions) {
		return fmt.Errorf("got answers for %d questions, quiz has %d", len(selections), len(questions))
	}
	for q, chosen := range selections {
		if len(chosen) > 1 && !questions[q].MultiSelect {
			return fmt.Errorf("question %d accepts a single answer", q)
		}
		seen := make(map[int]bool, len(chosen))
		for _, a := range chosen {
			if a < 0 || a >= len(questions[q].Answers) {
				return fmt.Errorf("question %d has no answer %d", q, a)
			}
			if seen[a] {
				return fmt.Errorf("question %d answer %d selected twice", q, a)
			}
			seen[a] = true
		}
	}
	return nil
}

package quiz

import (
	"fmt"
	"strings"
)

type Chakra string

const (
	Root        Chakra = "root"
	Sacral      Chakra = "sacral"
	SolarPlexus Chakra = "solar-plexus"
	Heart       Chakra = "heart"
	Throat      Chakra = "throat"
	ThirdEye    Chakra = "third-eye"
	Crown       Chakra = "crown"
)

// Chakras lists every chakra from root to crown.
var Chakras = []Chakra{Root, Sacral, SolarPlexus, Heart, Throat, ThirdEye, Crown}

func (c Chakra) Valid() bool {
	for _, known := range Chakras {
		if c == known {
			return true
		}
	}
	return false
}

func ParseChakra(s string) (Chakra, error) {
	c := Chakra(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown chakra %q", s)
	}
	return c, nil
}

// State is the canonical energy state an answer votes for.
type State string

const (
	Excess  State = "excess"
	Deficit State = "deficit"
	Stable  State = "stable"
)

// ParseState accepts both the seed vocabulary (excess/deficit/stable) and the
// quiz UI vocabulary (over/under/balanced).
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excess", "over":
		return Excess, nil
	case "deficit", "under":
		return Deficit, nil
	case "stable", "balanced":
		return Stable, nil
	}
	return "", fmt.Errorf("unknown energy state %q", s)
}

// Label is the presentation name: over, under or stable.
func (s State) Label() string {
	switch s {
	case Excess:
		return "over"
	case Deficit:
		return "under"
	default:
		return "stable"
	}
}

// NewAnswer builds an answer from raw values in either vocabulary.
func NewAnswer(text, chakra, state string, weight float64) (Answer, error) {
	c, err := ParseChakra(chakra)
	if err != nil {
		return Answer{}, err
	}
	s, err := ParseState(state)
	if err != nil {
		return Answer{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Answer{}, fmt.Errorf("answer text is required")
	}
	return Answer{Text: text, Chakra: c, State: s, Weight: weight}, nil
}

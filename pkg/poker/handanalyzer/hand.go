package handanalyzer

import (
	"fmt"
	"strings"
)

// Category is a poker hand category, i.e., full house
type Category int

// Constants for Category, weakest first
const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryIDs = map[Category]string{
	HighCard:      "high-card",
	OnePair:       "one-pair",
	TwoPair:       "two-pair",
	ThreeOfAKind:  "three-of-a-kind",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full-house",
	FourOfAKind:   "four-of-a-kind",
	StraightFlush: "straight-flush",
}

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", c))
	}
}

// MarshalText encodes the category as its identifier
func (c Category) MarshalText() ([]byte, error) {
	if c == 0 {
		return []byte{}, nil
	}

	id, ok := categoryIDs[c]
	if !ok {
		return nil, fmt.Errorf("unknown hand: %d", c)
	}

	return []byte(id), nil
}

// UnmarshalText decodes a category identifier
func (c *Category) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	if s == "" {
		*c = 0
		return nil
	}

	for category, id := range categoryIDs {
		if id == s {
			*c = category
			return nil
		}
	}

	return fmt.Errorf("unknown hand: %s", s)
}

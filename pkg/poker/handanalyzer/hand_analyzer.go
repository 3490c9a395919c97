package handanalyzer

import (
	"errors"
	"fmt"
	"sort"
	"texasholdem-server/pkg/deck"
)

// ErrInvalidCardCount is returned when a hand cannot be formed from the cards supplied
var ErrInvalidCardCount = errors.New("a hand needs between 5 and 7 cards")

// Outcome is the result of comparing one hand against another
type Outcome int

// Outcome constants
const (
	Lose Outcome = iota - 1
	Tie
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	}

	return "tie"
}

// Hand is a classified five-card poker hand
type Hand struct {
	Category Category `json:"category"`
	// Cards holds the five cards, most significant first (i.e., the pair before the kickers)
	Cards deck.Hand `json:"cards"`
	// Key is compared element by element when two hands share a category
	Key []int `json:"key"`
}

// rankGroup is a rank and how many times it appears in the hand
type rankGroup struct {
	rank  int
	count int
}

// ClassifyFiveCards returns the category and tie-break key of exactly five cards
func ClassifyFiveCards(five []deck.Card) (Hand, error) {
	if len(five) != 5 {
		return Hand{}, fmt.Errorf("%w: got %d cards to classify, need 5", ErrInvalidCardCount, len(five))
	}

	if err := checkDuplicates(five); err != nil {
		return Hand{}, err
	}

	counts := make(map[int]int)
	isFlush := true
	for _, card := range five {
		counts[card.Rank]++
		if card.Suit != five[0].Suit {
			isFlush = false
		}
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	// bigger groups first, then higher ranks
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	straightHigh, isStraight := checkStraight(groups)

	var category Category
	var key []int
	switch {
	case isStraight && isFlush:
		category = StraightFlush
		key = straightKey(straightHigh)
	case groups[0].count == 4:
		category = FourOfAKind
		key = groupRanks(groups)
	case groups[0].count == 3 && groups[1].count == 2:
		category = FullHouse
		key = groupRanks(groups)
	case isFlush:
		category = Flush
		key = groupRanks(groups)
	case isStraight:
		category = Straight
		key = straightKey(straightHigh)
	case groups[0].count == 3:
		category = ThreeOfAKind
		key = groupRanks(groups)
	case groups[0].count == 2 && groups[1].count == 2:
		category = TwoPair
		key = groupRanks(groups)
	case groups[0].count == 2:
		category = OnePair
		key = groupRanks(groups)
	default:
		category = HighCard
		key = groupRanks(groups)
	}

	return Hand{
		Category: category,
		Cards:    orderCards(five, groups, isStraight && straightHigh == 5),
		Key:      key,
	}, nil
}

// checkStraight reports the high card of a straight. groups must be sorted by rank when every count is one
// The wheel (A-2-3-4-5) is a five-high straight
func checkStraight(groups []rankGroup) (int, bool) {
	if len(groups) != 5 {
		return 0, false
	}

	high := groups[0].rank
	low := groups[4].rank
	if high-low == 4 {
		return high, true
	}

	if high == deck.Ace && groups[1].rank == 5 && low == 2 {
		return 5, true
	}

	return 0, false
}

func straightKey(high int) []int {
	key := make([]int, 5)
	for i := range key {
		key[i] = high - i
	}

	return key
}

func groupRanks(groups []rankGroup) []int {
	ranks := make([]int, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}

	return ranks
}

// orderCards sorts the cards by group significance. In a wheel the ace goes last
func orderCards(five []deck.Card, groups []rankGroup, isWheel bool) deck.Hand {
	position := make(map[int]int, len(groups))
	for i, g := range groups {
		position[g.rank] = i
	}

	if isWheel {
		position[deck.Ace] = len(groups)
	}

	cards := make(deck.Hand, len(five))
	copy(cards, five)
	sort.SliceStable(cards, func(i, j int) bool {
		pi, pj := position[cards[i].Rank], position[cards[j].Rank]
		if pi != pj {
			return pi < pj
		}

		return cards[i].Suit < cards[j].Suit
	})

	return cards
}

func checkDuplicates(cards []deck.Card) error {
	seen := make(map[deck.Card]bool, len(cards))
	for _, card := range cards {
		if seen[card] {
			return fmt.Errorf("duplicate card %s", deck.CardToString(card))
		}

		seen[card] = true
	}

	return nil
}

// EvaluateBestHand finds the best five-card hand out of 5 to 7 cards
func EvaluateBestHand(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: got %d", ErrInvalidCardCount, len(cards))
	}

	if err := checkDuplicates(cards); err != nil {
		return Hand{}, err
	}

	var best Hand
	found := false
	var classifyErr error
	eachCombination(cards, 5, func(five []deck.Card) {
		if classifyErr != nil {
			return
		}

		hand, err := ClassifyFiveCards(five)
		if err != nil {
			classifyErr = err
			return
		}

		if !found || Compare(hand, best) == Win {
			best = hand
			found = true
		}
	})

	if classifyErr != nil {
		return Hand{}, classifyErr
	}

	return best, nil
}

// eachCombination calls fn with every size-card subset of cards, in lexicographic index order
// fn receives a scratch slice that is reused between calls
func eachCombination(cards []deck.Card, size int, fn func([]deck.Card)) {
	chosen := make([]deck.Card, 0, size)

	var helper func(start int)
	helper = func(start int) {
		if len(chosen) == size {
			fn(chosen)
			return
		}

		for i := start; i <= len(cards)-(size-len(chosen)); i++ {
			chosen = append(chosen, cards[i])
			helper(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}

	helper(0)
}

// Compare returns Win if a beats b, Lose if b beats a, and Tie otherwise
func Compare(a, b Hand) Outcome {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return Win
		}

		return Lose
	}

	for i := 0; i < len(a.Key) && i < len(b.Key); i++ {
		if a.Key[i] > b.Key[i] {
			return Win
		} else if a.Key[i] < b.Key[i] {
			return Lose
		}
	}

	return Tie
}

// Strength packs the category and the key into one integer that orders hands the same way Compare does
func (h Hand) Strength() int {
	strength := h.Category.base()
	factor := 15 * 15 * 15 * 15
	for i := 0; i < 5; i++ {
		if i < len(h.Key) {
			strength += h.Key[i] * factor
		}

		factor /= 15
	}

	return strength
}

func (c Category) base() int {
	return int(c) * 15 * 15 * 15 * 15 * 15
}

// String returns a description such as "Pair (13s,13h,14d,9c,2c)"
func (h Hand) String() string {
	if h.Category == 0 {
		return ""
	}

	return fmt.Sprintf("%s (%s)", h.Category, h.Cards)
}

package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"texasholdem-server/internal/rng"
)

// ErrInsufficientCards is an error when Deal() asks for more cards than are left
// A fresh deck can always cover a full table, so callers should treat it as fatal
var ErrInsufficientCards = errors.New("insufficient cards left in the deck")

// Deck represents a playing deck
// The zero value is an empty deck
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= 14; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return Deck{Cards: cards}
}

// NewShuffled returns all 52 cards in a random order
func NewShuffled(gen rng.Generator) Deck {
	d := New()
	d.Shuffle(gen)
	return d
}

// Shuffle will shuffle the remaining cards in place
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Deal removes and returns the first n cards
// If fewer than n cards remain, the deck is left untouched and ErrInsufficientCards is returned
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}

	if !d.CanDraw(n) {
		return nil, fmt.Errorf("%w: wanted %d, have %d", ErrInsufficientCards, n, len(d.Cards))
	}

	cards := make([]Card, n)
	copy(cards, d.Cards[:n])
	d.Cards = d.Cards[n:]

	return cards, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d Deck) CardsLeft() int {
	return len(d.Cards)
}

// Clone returns a deck that shares no memory with d
func (d Deck) Clone() Deck {
	cards := make([]Card, len(d.Cards))
	copy(cards, d.Cards)
	return Deck{Cards: cards}
}

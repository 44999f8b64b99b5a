package deck

import (
	"errors"

	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
)

// ErrEndOfDeck is an error when a card is drawn from an empty pile
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrInvalidSize is returned for a deck size other than 32, 52, 64 or 104
var ErrInvalidSize = errors.New("deck size must be one of 32, 52, 64, 104")

var shortValues = []Value{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
var lowValues = []Value{Two, Three, Four, Five, Six}

// ValidSize returns true if a deck of the given size can be built
func ValidSize(size int) bool {
	switch size {
	case 32, 52, 64, 104:
		return true
	}

	return false
}

// Values returns the card values used by a deck of the given size
func Values(size int) []Value {
	values := make([]Value, 0, len(shortValues)+len(lowValues))
	values = append(values, shortValues...)
	if size == 52 || size == 104 {
		values = append(values, lowValues...)
	}

	return values
}

// Copies returns how many copies of every card a deck of the given size holds
func Copies(size int) int {
	if size == 64 || size == 104 {
		return 2
	}

	return 1
}

// Generate returns an unshuffled deck of the given size
// 64 and 104 are two concatenated 32 and 52 card decks
func Generate(size int) (Pile, error) {
	if !ValidSize(size) {
		return nil, ErrInvalidSize
	}

	values := Values(size)
	single := make(Pile, 0, len(Suits)*len(values))
	for _, suit := range Suits {
		for _, value := range values {
			single = append(single, Card{Suit: suit, Value: value})
		}
	}

	cards := make(Pile, 0, size)
	for i := 0; i < Copies(size); i++ {
		cards = append(cards, single...)
	}

	return cards, nil
}

// New returns a shuffled deck of the given size
func New(size int, r rng.Generator) (Pile, error) {
	cards, err := Generate(size)
	if err != nil {
		return nil, err
	}

	Shuffle(cards, r)
	return cards, nil
}

// Shuffle shuffles the cards in place
func Shuffle(cards Pile, r rng.Generator) {
	for j := len(cards) - 1; j > 0; j-- {
		i := r.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}
}

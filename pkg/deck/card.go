package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

// Suits are all suits in deck order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Value is the face value of a card
type Value string

// value constants
const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

// Card is an individual playing card
// Cards have no identity beyond suit and value, so two copies in a double deck are equal
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return fmt.Sprintf("%s%s", c.Value, suit)
}

// Equal returns true if the cards are equal (matches suit and value)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Value == card.Value
}

// IsValid returns true if the suit and value are known
func (c Card) IsValid() bool {
	return IsSuit(string(c.Suit)) && isValue(c.Value)
}

// IsSuit returns true if s names one of the four suits
func IsSuit(s string) bool {
	for _, suit := range Suits {
		if string(suit) == s {
			return true
		}
	}

	return false
}

func isValue(v Value) bool {
	for _, val := range Values(104) {
		if val == v {
			return true
		}
	}

	return false
}

var cardRx = regexp.MustCompile(`(?i)^(10|[2-9jqka])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <value><suit> where value is 2-10, J, Q, K or A and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{
		Suit:  suit,
		Value: Value(strings.ToUpper(match[1])),
	}
}

// CardsFromString will return a pile of cards from a comma separated list
func CardsFromString(s string) Pile {
	if s == "" {
		return Pile{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make(Pile, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

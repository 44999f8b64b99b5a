package deck

// Pile is an ordered collection of cards (a hand, a draw pile, a discard pile)
// The last card is the top of the pile
type Pile []Card

// Len returns the number of cards
func (p Pile) Len() int {
	return len(p)
}

// Top returns the top card
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}

	return p[len(p)-1], true
}

// Push puts cards on top of the pile
func (p *Pile) Push(cards ...Card) {
	*p = append(*p, cards...)
}

// Pop removes the top card
func (p *Pile) Pop() (Card, error) {
	card, ok := p.Top()
	if !ok {
		return Card{}, ErrEndOfDeck
	}

	*p = (*p)[:len(*p)-1]
	return card, nil
}

// Deal takes up to n cards from the bottom of the pile
func (p *Pile) Deal(n int) Pile {
	if n > len(*p) {
		n = len(*p)
	}

	dealt := make(Pile, n)
	copy(dealt, (*p)[:n])
	*p = (*p)[n:]
	return dealt
}

// Last returns the top n cards, bottom first
func (p Pile) Last(n int) Pile {
	if n > len(p) {
		n = len(p)
	}

	if n <= 0 {
		return Pile{}
	}

	return p[len(p)-n:].Clone()
}

// HasCard returns true if the pile contains the specified card
func (p Pile) HasCard(card Card) bool {
	for _, c := range p {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// HasCards returns true if the pile holds every card, counting duplicates
func (p Pile) HasCards(cards []Card) bool {
	remaining := p.Clone()
	for _, card := range cards {
		if !remaining.Discard(card) {
			return false
		}
	}

	return true
}

// Discard removes the first copy of the card, returns false if not found
func (p *Pile) Discard(card Card) bool {
	for i, c := range *p {
		if c.Equal(card) {
			*p = append((*p)[:i], (*p)[i+1:]...)
			return true
		}
	}

	return false
}

// CountValue returns how many cards have the value
func (p Pile) CountValue(value Value) int {
	count := 0
	for _, c := range p {
		if c.Value == value {
			count++
		}
	}

	return count
}

// DiscardValue removes every card of the value and returns the number removed
func (p *Pile) DiscardValue(value Value) int {
	kept := make(Pile, 0, len(*p))
	for _, c := range *p {
		if c.Value != value {
			kept = append(kept, c)
		}
	}

	removed := len(*p) - len(kept)
	*p = kept
	return removed
}

// Clone returns a copy of the pile
// A nil pile clones to an empty pile so it encodes as [] in JSON
func (p Pile) Clone() Pile {
	cp := make(Pile, len(p))
	copy(cp, p)
	return cp
}

// Package maumau implements Mau-Mau: match the top discard by suit or value,
// 7s stack draw penalties, 8s skip the next player and Jacks name a suit
package maumau

import (
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// actions
const (
	ActionPlaceCard   = "place_card_on_stack"
	ActionDrawCard    = "draw_card"
	ActionDrawPenalty = "draw_penalty"
	ActionSkip        = "skip"
	ActionMau         = "mau"
)

// message keys
const (
	FieldMau     = "mau"
	FieldJChoice = "j_choice"
	FieldCount7  = "count_7"
)

// MauMau is the Mau-Mau variant
type MauMau struct {
	handlers map[string]playable.HandlerFunc
}

var _ playable.Variant = &MauMau{}

// New returns the Mau-Mau variant
func New() *MauMau {
	return &MauMau{
		handlers: map[string]playable.HandlerFunc{
			ActionPlaceCard:          placeCard,
			ActionDrawCard:           drawCard,
			ActionDrawPenalty:        drawPenalty,
			ActionSkip:               skip,
			playable.ActionLeaveGame: leaveGame,
		},
	}
}

// Name returns the session type
func (m *MauMau) Name() session.Variant {
	return session.MauMau
}

// MinPlayers returns the minimum number of ready players
func (m *MauMau) MinPlayers() int {
	return 2
}

// Handler returns the handler for the action
func (m *MauMau) Handler(action string) (playable.HandlerFunc, bool) {
	h, ok := m.handlers[action]
	return h, ok
}

// Start shuffles a deck, turns up a non-action card and deals the start cards
func (m *MauMau) Start(t *playable.Turn) error {
	s := t.Session
	cards, err := deck.New(s.Settings.DeckSize, t.Rng)
	if err != nil {
		return err
	}

	s.State = session.State{
		Started:     true,
		Winner:      []string{},
		DrawPile:    cards,
		DiscardPile: deck.Pile{},
		RemovedPile: []deck.Value{},
	}

	st := t.State()
	if err := turnFirstCard(st); err != nil {
		return err
	}

	order := s.Order()
	t.StartTurn(order[t.Rng.Intn(len(order))])

	top, _ := st.DiscardPile.Top()
	t.Broadcast(playable.ActionStart, playable.Fields{playable.FieldDiscardPile: top})

	for _, id := range order {
		p := s.Players[id]
		p.Hand = st.DrawPile.Deal(s.Settings.NumberOfStartCards)
		p.LastAction = playable.ActionReady
		t.Send(id, playable.ActionHand, playable.Fields{playable.FieldHand: p.Hand.Clone()})
	}

	broadcastCardCount(t)
	t.BroadcastTurn()
	return nil
}

// GameData returns the requesting player's view of the table
func (m *MauMau) GameData(t *playable.Turn) playable.Fields {
	st := t.State()
	top, _ := st.DiscardPile.Top()
	return playable.Fields{
		playable.FieldPlayers:       t.HandCounts(),
		playable.FieldDiscardPile:   top,
		playable.FieldDrawPile:      len(st.DrawPile),
		playable.FieldCurrentPlayer: st.CurrentPlayer,
		playable.FieldHand:          t.Player().Hand.Clone(),
	}
}

// Normalize applies a single post-action rule: refill the draw pile,
// retire an empty hand, or end the game when one player is left
func (m *MauMau) Normalize(t *playable.Turn) bool {
	s := t.Session
	if !s.State.Started {
		return false
	}

	if refill(t) {
		return true
	}

	for _, id := range s.Order() {
		if len(s.Players[id].Hand) == 0 {
			retire(t, id)
			return true
		}
	}

	if len(s.Players) <= 1 {
		t.Broadcast(playable.ActionEnd, playable.Fields{playable.FieldWinner: t.FirstWinner()})
		s.Reset()
		return true
	}

	return false
}

// retire removes a player whose hand is empty and records the win
func retire(t *playable.Turn, id string) {
	s := t.Session
	if s.State.CurrentPlayer == id {
		t.StartTurn(s.NextPlayer(id, 0))
	}

	s.RemovePlayer(id)
	s.State.Winner = append(s.State.Winner, id)
	t.Broadcast(playable.ActionWin, playable.Fields{playable.FieldPlayer: id})
}

func isActionCard(card deck.Card) bool {
	switch card.Value {
	case deck.Seven, deck.Eight, deck.Jack:
		return true
	}

	return false
}

// turnFirstCard turns cards onto the discard pile until one is not an action card
func turnFirstCard(st *session.State) error {
	for {
		card, err := st.DrawPile.Pop()
		if err != nil {
			return err
		}

		st.DiscardPile.Push(card)
		if !isActionCard(card) {
			return nil
		}
	}
}

// canPlace returns true if card may be played on top of the discard pile
func canPlace(st *session.State, card deck.Card) bool {
	top, ok := st.DiscardPile.Top()
	if !ok {
		return true
	}

	if card.Value == deck.Jack && top.Value == deck.Jack {
		return false
	}

	if top.Value == deck.Jack {
		return card.Suit == st.JChoice
	}

	return card.Value == top.Value || card.Suit == top.Suit || card.Value == deck.Jack
}

// refill turns the discard pile, minus its top card, into a new draw pile
// once the draw pile is empty
func refill(t *playable.Turn) bool {
	st := t.State()
	if len(st.DrawPile) > 0 || len(st.DiscardPile) < 2 {
		return false
	}

	n := len(st.DiscardPile) - 1
	pile := st.DiscardPile[:n].Clone()
	deck.Shuffle(pile, t.Rng)

	st.DrawPile = pile
	st.DiscardPile = deck.Pile{st.DiscardPile[n]}
	return true
}

// draw takes the top card of the draw pile, refilling it first if needed
func draw(t *playable.Turn) (deck.Card, error) {
	refill(t)

	card, err := t.State().DrawPile.Pop()
	if err != nil {
		return deck.Card{}, playable.ErrNoCardsLeft
	}

	return card, nil
}

func broadcastCardCount(t *playable.Turn) {
	st := t.State()
	t.Broadcast(playable.ActionCardCount, playable.Fields{
		playable.FieldDiscardPileCount: len(st.DiscardPile),
		playable.FieldDrawPileCount:    len(st.DrawPile),
		playable.FieldHandCount:        t.HandCounts(),
	})
}

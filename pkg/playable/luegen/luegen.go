// Package luegen implements Lügen, a bluffing game: players place cards face
// down claiming a value and any opponent may challenge the claim
package luegen

import (
	"errors"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// actions
const (
	ActionPlaceCards = "place_cards"
	ActionChallenge  = "challenge"
)

// message keys
const (
	FieldClaimedValue = "claimed_value"
	FieldRoundValue   = "round_value"
	FieldNLast        = "n_last"
	FieldLastPlayer   = "last_player"
	FieldRemovedPile  = "removed_pile"
	FieldOpponent     = "opponent"
	FieldChallenger   = "challenger"
	FieldSuccess      = "success"
)

// end reasons
const (
	ReasonTwoPlayersLeft = "only_two_players_left"
	ReasonAllAces        = "Pair of Aces"
)

// maxDeals bounds the redeal loop of the initial deal
const maxDeals = 1000

// ErrDealFailed is returned if no deal without an all-aces hand was found
var ErrDealFailed = errors.New("could not deal without a hand holding every ace")

// Luegen is the Lügen variant
type Luegen struct {
	handlers map[string]playable.HandlerFunc
}

var _ playable.Variant = &Luegen{}

// New returns the Lügen variant
func New() *Luegen {
	return &Luegen{
		handlers: map[string]playable.HandlerFunc{
			ActionPlaceCards:         placeCards,
			ActionChallenge:          challenge,
			playable.ActionLeaveGame: leaveGame,
		},
	}
}

// Name returns the session type
func (l *Luegen) Name() session.Variant {
	return session.Luegen
}

// MinPlayers returns the minimum number of ready players
func (l *Luegen) MinPlayers() int {
	return 3
}

// Handler returns the handler for the action
func (l *Luegen) Handler(action string) (playable.HandlerFunc, bool) {
	h, ok := l.handlers[action]
	return h, ok
}

// Start deals the whole deck, redealing while any hand holds every ace
func (l *Luegen) Start(t *playable.Turn) error {
	s := t.Session
	size := s.Settings.DeckSize
	order := s.Order()

	var hands []deck.Pile
	for attempt := 0; ; attempt++ {
		if attempt == maxDeals {
			return ErrDealFailed
		}

		cards, err := deck.New(size, t.Rng)
		if err != nil {
			return err
		}

		hands = split(cards, len(order))
		if !anyHoldsAllAces(hands, size) {
			break
		}
	}

	s.State = session.State{
		Started:     true,
		Winner:      []string{},
		DrawPile:    deck.Pile{},
		DiscardPile: deck.Pile{},
		RemovedPile: []deck.Value{},
	}

	for i, id := range order {
		p := s.Players[id]
		p.Hand = hands[i]
		p.LastAction = playable.ActionReady
	}

	t.StartTurn(order[0])
	t.Normalize()
	if t.Ended() {
		return nil
	}

	t.Broadcast(playable.ActionStart, playable.Fields{})
	t.SendHands()
	broadcastCardCount(t)
	t.BroadcastTurn()
	return nil
}

// GameData returns the requesting player's view of the table
func (l *Luegen) GameData(t *playable.Turn) playable.Fields {
	st := t.State()
	return playable.Fields{
		playable.FieldPlayers:          t.HandCounts(),
		playable.FieldCurrentPlayer:    st.CurrentPlayer,
		playable.FieldHand:             t.Player().Hand.Clone(),
		playable.FieldDiscardPileCount: len(st.DiscardPile),
		FieldRemovedPile:               append([]deck.Value{}, st.RemovedPile...),
		FieldRoundValue:                nullable(string(st.RoundValue)),
		FieldNLast:                     st.NLast,
		FieldLastPlayer:                nullable(st.LastPlayer),
	}
}

// Normalize applies a single post-action rule, in order: end the game with two
// players left, end it when a classic hand holds every ace, discard a complete
// set of one value, or retire a player whose hand is empty. The last player to
// place is only retired once their placement is settled.
func (l *Luegen) Normalize(t *playable.Turn) bool {
	s := t.Session
	st := t.State()
	if !st.Started {
		return false
	}

	if len(s.Players) <= 2 {
		t.Broadcast(playable.ActionEnd, playable.Fields{
			playable.FieldReason: ReasonTwoPlayersLeft,
			playable.FieldWinner: t.FirstWinner(),
		})

		s.Reset()
		return true
	}

	size := s.Settings.DeckSize
	full := 4 * deck.Copies(size)
	order := s.Order()

	if s.Settings.Gamemode == session.GamemodeClassic {
		for _, id := range order {
			if s.Players[id].Hand.CountValue(deck.Ace) >= full {
				t.Broadcast(playable.ActionEnd, playable.Fields{
					playable.FieldReason: ReasonAllAces,
					playable.FieldPlayer: id,
				})

				s.Reset()
				return true
			}
		}
	}

	for _, id := range order {
		p := s.Players[id]
		for _, value := range deck.Values(size) {
			if p.Hand.CountValue(value) < full {
				continue
			}

			p.Hand.DiscardValue(value)
			st.RemovedPile = append(st.RemovedPile, value)
			t.Broadcast(playable.ActionDiscardDuplicates, playable.Fields{
				playable.FieldValue:  value,
				playable.FieldPlayer: id,
			})

			return true
		}
	}

	for _, id := range order {
		if id != st.LastPlayer && len(s.Players[id].Hand) == 0 {
			retire(t, id)
			return true
		}
	}

	return false
}

// resolvePendingWin retires the last player to place if their hand is still empty
func resolvePendingWin(t *playable.Turn) {
	st := t.State()
	p, ok := t.Session.Players[st.LastPlayer]
	if !ok || len(p.Hand) > 0 {
		return
	}

	id := st.LastPlayer
	st.LastPlayer = ""
	retire(t, id)
	t.Normalize()
}

func retire(t *playable.Turn, id string) {
	s := t.Session
	if s.State.CurrentPlayer == id {
		t.StartTurn(s.NextPlayer(id, 0))
	}

	s.RemovePlayer(id)
	s.State.Winner = append(s.State.Winner, id)
	t.Broadcast(playable.ActionWin, playable.Fields{playable.FieldPlayer: id})
}

// split deals the cards into n hands as evenly as possible, earlier hands get the remainder
func split(cards deck.Pile, n int) []deck.Pile {
	hands := make([]deck.Pile, n)
	base := len(cards) / n
	extra := len(cards) % n
	for i := range hands {
		count := base
		if i < extra {
			count++
		}

		hands[i] = cards.Deal(count)
	}

	return hands
}

func anyHoldsAllAces(hands []deck.Pile, size int) bool {
	for _, h := range hands {
		if h.CountValue(deck.Ace) >= 4*deck.Copies(size) {
			return true
		}
	}

	return false
}

// maxCards is the most cards a single placement may hold
func maxCards(size int) int {
	if deck.Copies(size) == 2 {
		return 7
	}

	return 3
}

func claimable(settings session.Settings, value deck.Value) bool {
	if settings.Gamemode == session.GamemodeClassic && value == deck.Ace {
		return false
	}

	for _, v := range deck.Values(settings.DeckSize) {
		if v == value {
			return true
		}
	}

	return false
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}

	return s
}

func broadcastCardCount(t *playable.Turn) {
	t.Broadcast(playable.ActionCardCount, playable.Fields{
		playable.FieldHandCount: t.HandCounts(),
	})
}

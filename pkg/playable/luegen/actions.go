package luegen

import (
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
)

func placeCards(t *playable.Turn) error {
	data := t.Data
	if len(data) > 2 {
		return playable.ErrWrongData
	}

	if !data.Has(playable.FieldCards) {
		return playable.ErrNoCardsProvided
	}

	if !data.Has(FieldClaimedValue) {
		return playable.ErrNoClaimedValueProvided
	}

	cards, ok := data.GetCards(playable.FieldCards)
	if !ok {
		return playable.ErrWrongData
	}

	if len(cards) == 0 {
		return playable.ErrNoCardsProvided
	}

	claimed, ok := data.GetString(FieldClaimedValue)
	if !ok {
		return playable.ErrWrongData
	}

	s := t.Session
	if len(cards) > maxCards(s.Settings.DeckSize) {
		return playable.ErrTooManyCards
	}

	resolvePendingWin(t)
	if t.Ended() {
		return nil
	}

	value := deck.Value(claimed)
	if !claimable(s.Settings, value) {
		return playable.ErrValueNotPossible
	}

	player := t.Player()
	if !player.Hand.HasCards(cards) {
		return playable.ErrCardNotInHand
	}

	st := t.State()
	if st.RoundValue != "" && st.RoundValue != value {
		return playable.ErrValueNotPossible
	}

	st.RoundValue = value
	for _, c := range cards {
		player.Hand.Discard(c)
		st.DiscardPile.Push(c)
	}

	st.NLast = len(cards)
	st.LastPlayer = t.PlayerID
	player.LastAction = ActionPlaceCards
	t.StartTurn(s.NextPlayer(t.PlayerID, 0))

	t.Broadcast(ActionPlaceCards, playable.Fields{
		FieldClaimedValue:    value,
		FieldNLast:           st.NLast,
		playable.FieldPlayer: t.PlayerID,
	})

	t.Normalize()
	if t.Ended() {
		return nil
	}

	broadcastCardCount(t)
	t.BroadcastTurn()
	return nil
}

func challenge(t *playable.Turn) error {
	if len(t.Data) != 0 {
		return playable.ErrWrongData
	}

	s := t.Session
	st := t.State()
	opponent, ok := s.Players[st.LastPlayer]
	if len(st.DiscardPile) == 0 || !ok {
		return playable.ErrChallengeNotPossible
	}

	revealed := st.DiscardPile.Last(st.NLast)
	success := false
	for _, c := range revealed {
		if c.Value != st.RoundValue {
			success = true
			break
		}
	}

	taker := t.Player()
	if success {
		taker = opponent
	}

	taker.Hand.Push(st.DiscardPile...)
	t.Player().LastAction = ActionChallenge
	st.Success = success
	st.DiscardPile = deck.Pile{}
	st.RoundValue = ""
	st.NLast = 0

	t.Broadcast(ActionChallenge, playable.Fields{
		FieldOpponent:       st.LastPlayer,
		FieldChallenger:     t.PlayerID,
		FieldSuccess:        success,
		playable.FieldCards: revealed,
	})

	t.Normalize()
	if t.Ended() {
		return nil
	}

	resolvePendingWin(t)
	if t.Ended() {
		return nil
	}

	st.LastPlayer = ""
	t.SendHands()
	broadcastCardCount(t)

	if t.Player() != nil {
		if success {
			t.StartTurn(t.PlayerID)
		} else {
			t.StartTurn(s.NextPlayer(t.PlayerID, 0))
		}
	}

	t.BroadcastTurn()
	return nil
}

func leaveGame(t *playable.Turn) error {
	if len(t.Data) != 0 {
		return playable.ErrWrongData
	}

	player := t.Player()
	if player == nil {
		return playable.ErrNotInLobby
	}

	s := t.Session
	st := t.State()
	st.DrawPile = player.Hand.Clone()

	wasCurrent := st.CurrentPlayer == t.PlayerID
	next := ""
	if wasCurrent {
		next = s.NextPlayer(t.PlayerID, 0)
	}

	s.RemovePlayer(t.PlayerID)
	if st.LastPlayer == t.PlayerID {
		st.LastPlayer = ""
	}

	t.Broadcast(playable.ActionLeaveGame, playable.Fields{
		playable.FieldPlayer:  t.PlayerID,
		playable.FieldPlayers: s.Order(),
	})

	if wasCurrent {
		t.StartTurn(next)
	}

	order := s.Order()
	if len(order) > 0 {
		for i, share := range split(st.DrawPile, len(order)) {
			s.Players[order[i]].Hand.Push(share...)
		}

		st.DrawPile = deck.Pile{}
	}

	t.Normalize()
	if t.Ended() {
		return nil
	}

	if wasCurrent {
		t.BroadcastTurn()
	}

	t.SendHands()
	broadcastCardCount(t)
	return nil
}

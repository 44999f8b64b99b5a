package maumau

import (
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/sirupsen/logrus"
)

func placeCard(t *playable.Turn) error {
	data := t.Data
	switch len(data) {
	case 2:
	case 3:
		if !data.Has(FieldJChoice) {
			return playable.ErrWrongData
		}
	default:
		return playable.ErrWrongData
	}

	if !data.Has(playable.FieldCard) {
		return playable.ErrNoCardProvided
	}

	if !data.Has(FieldMau) {
		return playable.ErrNoMauProvided
	}

	card, ok := data.GetCard(playable.FieldCard)
	if !ok {
		return playable.ErrWrongData
	}

	mau, ok := data.GetBool(FieldMau)
	if !ok {
		return playable.ErrWrongData
	}

	if card.Value == deck.Jack && !data.Has(FieldJChoice) {
		return playable.ErrNoChoiceProvided
	}

	player := t.Player()
	st := t.State()
	if !player.Hand.HasCard(card) {
		return playable.ErrCardNotInHand
	}

	if !canPlace(st, card) {
		return playable.ErrCardNotAllowed
	}

	if st.Count7 > 0 && card.Value != deck.Seven {
		return playable.ErrHasToDrawPenalty
	}

	var choice deck.Suit
	if card.Value == deck.Jack {
		c, _ := data.GetString(FieldJChoice)
		if !deck.IsSuit(c) {
			return playable.ErrJChoiceNotPossible
		}

		choice = deck.Suit(c)
	}

	player.Hand.Discard(card)
	st.DiscardPile.Push(card)

	if len(player.Hand) == 1 {
		if mau {
			t.Broadcast(ActionMau, playable.Fields{playable.FieldPlayer: t.PlayerID})
		} else if penalty, err := draw(t); err == nil {
			player.Hand.Push(penalty)
			t.Reply(playable.ActionHand, playable.Fields{
				playable.FieldHand:  player.Hand.Clone(),
				playable.FieldCards: penalty,
			})
		} else {
			logrus.WithField("player", t.PlayerID).Debug("no card left for the mau penalty")
		}
	}

	switch card.Value {
	case deck.Seven:
		st.Count7 += 2
	case deck.Jack:
		st.JChoice = choice
	}

	skipCount := 0
	if card.Value == deck.Eight {
		skipCount = 1
	}

	t.StartTurn(t.Session.NextPlayer(t.PlayerID, skipCount))

	msg := playable.Fields{
		playable.FieldCard:   card,
		playable.FieldPlayer: t.PlayerID,
	}

	if card.Value == deck.Jack {
		msg[FieldJChoice] = choice
	}

	t.Broadcast(ActionPlaceCard, msg)

	t.Normalize()
	if t.Ended() {
		return nil
	}

	if p := t.Player(); p != nil {
		p.LastAction = ActionPlaceCard
	}

	broadcastCardCount(t)
	t.BroadcastTurn()
	return nil
}

func drawCard(t *playable.Turn) error {
	if len(t.Data) != 0 {
		return playable.ErrWrongData
	}

	player := t.Player()
	if player.LastAction == ActionDrawCard {
		return playable.ErrCantDrawAgain
	}

	if t.State().Count7 != 0 {
		return playable.ErrHasToDrawPenalty
	}

	card, err := draw(t)
	if err != nil {
		return err
	}

	player.Hand.Push(card)
	player.LastAction = ActionDrawCard

	t.Reply(ActionDrawCard, playable.Fields{playable.FieldPlayer: t.PlayerID})
	t.Reply(playable.ActionHand, playable.Fields{
		playable.FieldHand:  player.Hand.Clone(),
		playable.FieldCards: card,
	})

	t.Normalize()
	broadcastCardCount(t)
	return nil
}

func drawPenalty(t *playable.Turn) error {
	if len(t.Data) != 0 {
		return playable.ErrWrongData
	}

	st := t.State()
	if st.Count7 == 0 {
		return playable.ErrZeroCount7
	}

	player := t.Player()
	drawn := deck.Pile{}
	for i := 0; i < st.Count7; i++ {
		card, err := draw(t)
		if err != nil {
			break
		}

		drawn.Push(card)
	}

	player.Hand.Push(drawn...)
	player.LastAction = ActionDrawPenalty
	st.Count7 = 0

	t.Broadcast(ActionDrawPenalty, playable.Fields{
		playable.FieldPlayer: t.PlayerID,
		FieldCount7:          len(drawn),
	})

	t.Reply(playable.ActionHand, playable.Fields{
		playable.FieldHand:  player.Hand.Clone(),
		playable.FieldCards: drawn,
	})

	t.Normalize()
	broadcastCardCount(t)
	return nil
}

func skip(t *playable.Turn) error {
	if len(t.Data) != 0 {
		return playable.ErrWrongData
	}

	player := t.Player()
	if player.LastAction != ActionDrawCard && len(t.State().DrawPile) > 0 {
		return playable.ErrCanNotSkip
	}

	player.LastAction = ActionSkip
	t.StartTurn(t.Session.NextPlayer(t.PlayerID, 0))
	t.Broadcast(ActionSkip, playable.Fields{playable.FieldPlayer: t.PlayerID})
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
	st.DiscardPile = append(player.Hand.Clone(), st.DiscardPile...)

	wasCurrent := st.CurrentPlayer == t.PlayerID
	next := ""
	if wasCurrent {
		next = s.NextPlayer(t.PlayerID, 0)
	}

	s.RemovePlayer(t.PlayerID)
	t.Broadcast(playable.ActionLeaveGame, playable.Fields{
		playable.FieldPlayer:  t.PlayerID,
		playable.FieldPlayers: s.Order(),
	})

	if wasCurrent {
		t.StartTurn(next)
	}

	t.Normalize()
	if t.Ended() {
		return nil
	}

	if wasCurrent {
		t.BroadcastTurn()
	}

	broadcastCardCount(t)
	return nil
}

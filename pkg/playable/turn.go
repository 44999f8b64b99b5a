package playable

import (
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// maxNormalizePasses bounds the normalize loop
const maxNormalizePasses = 64

// Turn is the working state of a single handler invocation
// Handlers mutate Session, which is a private copy of the stored session
type Turn struct {
	Session  *session.Session
	PlayerID string
	Data     AdditionalData
	Now      time.Time
	Rng      rng.Generator

	variant   Variant
	responses []*Response
}

// Player returns the acting player or nil if they are not in the session
func (t *Turn) Player() *session.Player {
	return t.Session.Players[t.PlayerID]
}

// State returns the session state
func (t *Turn) State() *session.State {
	return &t.Session.State
}

// Settings returns the session settings
func (t *Turn) Settings() session.Settings {
	return t.Session.Settings
}

// Broadcast queues a message for every connection of the session
func (t *Turn) Broadcast(action string, fields Fields) {
	t.responses = append(t.responses, &Response{Fields: withAction(action, fields)})
}

// Send queues a message for a single player
func (t *Turn) Send(recipient, action string, fields Fields) {
	t.responses = append(t.responses, &Response{
		Recipient: recipient,
		Fields:    withAction(action, fields),
	})
}

// Reply queues a message for the acting player
func (t *Turn) Reply(action string, fields Fields) {
	t.Send(t.PlayerID, action, fields)
}

// Responses returns the queued messages in order
func (t *Turn) Responses() []*Response {
	return t.responses
}

// Ended returns true once the session has left play shape
func (t *Turn) Ended() bool {
	return !t.Session.State.Started
}

// Normalize applies the variant's normalize step until nothing changes
func (t *Turn) Normalize() {
	for i := 0; i < maxNormalizePasses; i++ {
		if !t.variant.Normalize(t) {
			return
		}
	}
}

// StartTurn hands the turn to the player and restarts the turn clock
func (t *Turn) StartTurn(playerID string) {
	t.Session.StartTurn(playerID, t.Now)
}

// BroadcastTurn announces the current player
func (t *Turn) BroadcastTurn() {
	t.Broadcast(ActionTurn, Fields{FieldPlayer: t.State().CurrentPlayer})
}

// SendHands sends every player their own hand
func (t *Turn) SendHands() {
	for _, id := range t.Session.Order() {
		t.Send(id, ActionHand, Fields{FieldHand: t.Session.Players[id].Hand.Clone()})
	}
}

// HandCounts returns the hand sizes in turn order
func (t *Turn) HandCounts() OrderedCounts {
	return OrderedCounts{
		Order:  t.Session.Order(),
		Counts: t.Session.HandCounts(),
	}
}

// FirstWinner returns the first finisher, or nil so it encodes as null
func (t *Turn) FirstWinner() interface{} {
	if w := t.Session.FirstWinner(); w != "" {
		return w
	}

	return nil
}

func withAction(action string, fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}

	out[FieldAction] = action
	return out
}

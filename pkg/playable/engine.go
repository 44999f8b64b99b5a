package playable

import (
	"errors"
	"fmt"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/sirupsen/logrus"
)

// HandlerFunc performs one action on the working copy of a session
// Returning an ErrorCode discards every change the handler made
type HandlerFunc func(t *Turn) error

// Variant is a rule set that can be played in a session
type Variant interface {
	// Name returns the session type the variant plays
	Name() session.Variant

	// MinPlayers is the smallest number of ready players that starts a game
	MinPlayers() int

	// Start turns a lobby into a running game
	Start(t *Turn) error

	// GameData returns the requesting player's view of a running game
	GameData(t *Turn) Fields

	// Handler returns the handler for a variant specific action, including leave_game
	Handler(action string) (HandlerFunc, bool)

	// Normalize applies one round of the post-mutation rules
	// It returns true if anything changed
	Normalize(t *Turn) bool
}

// Engine dispatches actions to the variant of a session
// It never mutates the session it is given
type Engine struct {
	variants map[session.Variant]Variant
	rng      rng.Generator
	clock    func() time.Time
}

// NewEngine returns an engine for the given variants
func NewEngine(r rng.Generator, variants ...Variant) *Engine {
	e := &Engine{
		variants: make(map[session.Variant]Variant, len(variants)),
		rng:      r,
		clock:    time.Now,
	}

	for _, v := range variants {
		e.variants[v.Name()] = v
	}

	return e
}

// SetClock replaces the time source
// This should only be used by tests
func (e *Engine) SetClock(clock func() time.Time) {
	e.clock = clock
}

// Variant returns the variant registered for the session type
func (e *Engine) Variant(name session.Variant) (Variant, bool) {
	v, ok := e.variants[name]
	return v, ok
}

// Action performs the player's action and returns the resulting session plus the
// messages to deliver. Rule violations are reported as an error response with the
// original session. A non-nil error means the action could not be evaluated at all.
func (e *Engine) Action(s *session.Session, playerID string, msg *PayloadIn) (*session.Session, []*Response, error) {
	if msg == nil || msg.Action == "" {
		return s, []*Response{NewErrorResponse(playerID, ErrNoActionProvided)}, nil
	}

	v, ok := e.variants[s.Type]
	if !ok {
		return s, []*Response{NewErrorResponse(playerID, ErrUnknownGameType)}, nil
	}

	handler, err := route(v, s, playerID, msg.Action)
	if err != nil {
		return s, []*Response{NewErrorResponse(playerID, err)}, nil
	}

	data := msg.AdditionalData
	if data == nil {
		data = AdditionalData{}
	}

	t := e.newTurn(v, s, playerID, data)
	logrus.WithFields(logrus.Fields{
		"session": s.ID,
		"player":  playerID,
		"action":  msg.Action,
	}).Debug("dispatching action")

	return e.finish(s, t, handler(t))
}

// Timeout evicts the current player if their turn is older than limit
// The eviction is the variant's leave_game preceded by a timeout_penalty message
func (e *Engine) Timeout(s *session.Session, limit time.Duration) (*session.Session, []*Response, error) {
	state := s.State
	if !state.Started || state.CurrentPlayer == "" {
		return s, nil, nil
	}

	v, ok := e.variants[s.Type]
	if !ok {
		return s, nil, fmt.Errorf("unknown session type %q", s.Type)
	}

	now := e.clock()
	if state.TurnStartTime.IsZero() {
		cp := s.Clone()
		cp.State.TurnStartTime = now
		return cp, nil, nil
	}

	if now.Sub(state.TurnStartTime) <= limit {
		return s, nil, nil
	}

	leave, ok := v.Handler(ActionLeaveGame)
	if !ok {
		return s, nil, fmt.Errorf("%s has no %s handler", v.Name(), ActionLeaveGame)
	}

	t := e.newTurn(v, s, state.CurrentPlayer, AdditionalData{})
	t.Broadcast(ActionTimeoutPenalty, Fields{FieldPlayer: state.CurrentPlayer})

	logrus.WithFields(logrus.Fields{
		"session": s.ID,
		"player":  state.CurrentPlayer,
	}).Info("turn timed out")

	next, responses, err := e.finish(s, t, leave(t))
	if err != nil {
		return s, nil, err
	}

	// an error response here means the player could not be evicted
	if next == s {
		return s, nil, nil
	}

	return next, responses, nil
}

func (e *Engine) newTurn(v Variant, s *session.Session, playerID string, data AdditionalData) *Turn {
	return &Turn{
		Session:  s.Clone(),
		PlayerID: playerID,
		Data:     data,
		Now:      e.clock(),
		Rng:      e.rng,
		variant:  v,
	}
}

func (e *Engine) finish(s *session.Session, t *Turn, err error) (*session.Session, []*Response, error) {
	var code ErrorCode
	if errors.As(err, &code) {
		return s, []*Response{NewErrorResponse(t.PlayerID, code)}, nil
	}

	if err != nil {
		return s, nil, err
	}

	return t.Session, t.Responses(), nil
}

// route applies the dispatch rules in order: lobby actions always, only game data
// before the start, unknown actions, then turn ownership
func route(v Variant, s *session.Session, playerID string, action string) (HandlerFunc, error) {
	if IsLobbyAction(action) {
		return lobbyHandler(action), nil
	}

	if action == ActionRequestGameData {
		return requestGameData, nil
	}

	if !s.State.Started {
		return nil, ErrGameNotStarted
	}

	handler, ok := v.Handler(action)
	if !ok {
		return nil, ErrUnknownAction
	}

	if action != ActionLeaveGame && s.State.CurrentPlayer != playerID {
		return nil, ErrNotYourTurn
	}

	return handler, nil
}

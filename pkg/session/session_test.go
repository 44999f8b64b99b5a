package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/stretchr/testify/assert"
)

func newTestSession(players ...string) *Session {
	s := New(MauMau, "123456", Settings{MaxPlayers: 4, DeckSize: 32, NumberOfStartCards: 5})
	for _, id := range players {
		s.AddPlayer(id)
	}

	return s
}

func TestNew(t *testing.T) {
	a := assert.New(t)

	s := newTestSession()
	a.NotEmpty(s.ID)
	a.Equal(MauMau, s.Type)
	a.False(s.State.Started)
	a.Empty(s.Players)

	b, err := json.Marshal(s.State)
	a.NoError(err)
	a.Contains(string(b), `"draw_pile":[]`)
	a.Contains(string(b), `"winner":[]`)
}

func TestSession_Order(t *testing.T) {
	s := newTestSession("c", "a", "b")
	assert.Equal(t, []string{"c", "a", "b"}, s.Order())
	assert.Equal(t, 1, s.Players["c"].JoinSequence)
	assert.Equal(t, 3, s.Players["b"].JoinSequence)
}

func TestSession_NextPlayer(t *testing.T) {
	a := assert.New(t)

	s := newTestSession("p1", "p2", "p3")
	a.Equal("p2", s.NextPlayer("p1", 0))
	a.Equal("p1", s.NextPlayer("p3", 0))
	a.Equal("p3", s.NextPlayer("p1", 1))
	a.Equal("p1", s.NextPlayer("p2", 1))

	// applying it once per player returns to the start
	for _, start := range s.Order() {
		current := start
		for i := 0; i < len(s.Players); i++ {
			current = s.NextPlayer(current, 0)
		}

		a.Equal(start, current)
	}

	two := newTestSession("p1", "p2")
	a.Equal("p1", two.NextPlayer("p1", 1))

	a.Equal("", newTestSession().NextPlayer("p1", 0))
}

func TestSession_RemovePlayer(t *testing.T) {
	a := assert.New(t)

	s := newTestSession("p1", "p2", "p3")
	s.RemovePlayer("p1")
	a.NotContains(s.Players, "p1")
	a.Equal(2, s.Players["p2"].JoinSequence)
	a.Equal(3, s.Players["p3"].JoinSequence)

	s.RemovePlayer("p3")
	s.AddPlayer("p4")
	a.Equal(3, s.Players["p4"].JoinSequence, "a join after a leave takes the next free sequence")
	a.Equal([]string{"p2", "p4"}, s.Order())

	s.AddPlayer("p5")
	a.Equal(4, s.Players["p5"].JoinSequence)

	s.State.Started = true
	s.RemovePlayer("p2")
	a.Equal(3, s.Players["p4"].JoinSequence)
	a.Equal([]string{"p4", "p5"}, s.Order())
}

func TestSession_Clone(t *testing.T) {
	a := assert.New(t)

	s := newTestSession("p1", "p2")
	s.Players["p1"].Hand = deck.CardsFromString("7h,8h")
	s.State.DrawPile = deck.CardsFromString("9h")
	s.State.Winner = []string{"p3"}

	cp := s.Clone()
	cp.Players["p1"].Hand.Discard(deck.CardFromString("7h"))
	cp.Players["p1"].Ready = true
	cp.State.DrawPile.Push(deck.CardFromString("10h"))
	cp.State.Winner[0] = "p4"
	delete(cp.Players, "p2")

	a.Equal(deck.CardsFromString("7h,8h"), s.Players["p1"].Hand)
	a.False(s.Players["p1"].Ready)
	a.Equal(deck.CardsFromString("9h"), s.State.DrawPile)
	a.Equal([]string{"p3"}, s.State.Winner)
	a.Len(s.Players, 2)
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession("p1", "p2")
	s.State.Started = true
	s.State.CurrentPlayer = "p1"
	s.State.Count7 = 4
	s.Reset()

	assert.False(t, s.State.Started)
	assert.Equal(t, "", s.State.CurrentPlayer)
	assert.Equal(t, 0, s.State.Count7)
	assert.Empty(t, s.Players)
	assert.NotNil(t, s.Players)
}

func TestSession_Helpers(t *testing.T) {
	a := assert.New(t)

	s := newTestSession("p1", "p2")
	s.Players["p1"].Hand = deck.CardsFromString("7h,8h")
	a.Equal(map[string]int{"p1": 2, "p2": 0}, s.HandCounts())

	a.False(s.AllReady())
	s.Players["p1"].Ready = true
	a.Equal(map[string]bool{"p1": true, "p2": false}, s.ReadyFlags())
	s.Players["p2"].Ready = true
	a.True(s.AllReady())

	now := time.Now()
	s.StartTurn("p2", now)
	a.Equal("p2", s.State.CurrentPlayer)
	a.Equal(now, s.State.TurnStartTime)

	a.Equal("", s.FirstWinner())
	s.State.Winner = []string{"p9", "p8"}
	a.Equal("p9", s.FirstWinner())
}

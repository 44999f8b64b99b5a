package room

import (
	"context"
	"testing"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastWatchdog() Options {
	opts := DefaultOptions()
	opts.WatchdogInterval = 10 * time.Millisecond
	opts.TurnTimeout = time.Minute
	return opts
}

func (r *testRoom) runningGame(t *testing.T, turnStart time.Time) *session.Session {
	t.Helper()

	s := session.New(session.MauMau, "654321", session.Settings{
		MaxPlayers:         4,
		DeckSize:           32,
		NumberOfStartCards: 5,
	})
	s.AddPlayer("p1").Hand = deck.CardsFromString("7h,8h")
	s.AddPlayer("p2").Hand = deck.CardsFromString("9h,10h")
	s.State.Started = true
	s.State.DiscardPile = deck.CardsFromString("Qh")
	s.State.DrawPile = deck.CardsFromString("Kh,Ah")
	s.StartTurn("p1", turnStart)

	require.NoError(t, r.store.Create(context.Background(), s))
	return s
}

func TestWatchdog_EvictsIdlePlayer(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, fastWatchdog())
	s := r.runningGame(t, time.Now().Add(-2*time.Minute))

	p2 := r.connect("p2", s.ID)

	msg := receive(t, p2)
	a.Equal(playable.ActionTimeoutPenalty, msg.Action())
	a.Equal("p1", msg.Fields[playable.FieldPlayer])

	a.Equal(playable.ActionLeaveGame, receive(t, p2).Action())

	// only one player was left, so the game ended
	a.Eventually(func() bool {
		saved, err := r.store.Load(context.Background(), s.ID)
		return err == nil && !saved.State.Started
	}, time.Second, 10*time.Millisecond)
}

func TestWatchdog_LeavesActivePlayer(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, fastWatchdog())
	s := r.runningGame(t, time.Now())

	p2 := r.connect("p2", s.ID)
	assertSilent(t, p2)

	saved, err := r.store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	a.True(saved.State.Started)
	a.Contains(saved.Players, "p1")
}

func TestWatchdog_SkipsLobby(t *testing.T) {
	r := newTestRoom(t, fastWatchdog())
	s := r.lobby(t)

	c := r.connect("p1", s.ID)
	assertSilent(t, c)
	assert.Equal(t, 0, r.locker.Held())
}

func TestWatchdog_KeepsSweepingAfterEveryoneLeft(t *testing.T) {
	a := assert.New(t)
	opts := fastWatchdog()
	r := newTestRoom(t, opts)

	// p1's turn runs out shortly after the last client is gone
	s := r.runningGame(t, time.Now().Add(-opts.TurnTimeout+150*time.Millisecond))

	p2 := r.connect("p2", s.ID)
	r.pitBoss.ClientDisconnected(p2)

	saved, err := r.store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	a.True(saved.State.Started)
	a.Equal("p1", saved.State.CurrentPlayer)

	a.Eventually(func() bool {
		saved, err := r.store.Load(context.Background(), s.ID)
		return err == nil && !saved.State.Started
	}, 2*time.Second, 10*time.Millisecond)

	a.Eventually(func() bool {
		_, found := r.pitBoss.Dealer(s.ID)
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestWatchdog_DealerOutlivesConnectionsWhileStarted(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, fastWatchdog())
	s := r.runningGame(t, time.Now())

	p1 := r.connect("p1", s.ID)
	r.pitBoss.ClientDisconnected(p1)

	a.Never(func() bool {
		_, found := r.pitBoss.Dealer(s.ID)
		return !found
	}, 100*time.Millisecond, 10*time.Millisecond)
	a.Equal(1, r.pitBoss.ActiveSessions())
}

func TestWatchdog_RetiresDealerOfMissingSession(t *testing.T) {
	r := newTestRoom(t, fastWatchdog())

	c := r.connect("p1", "does-not-exist")
	r.pitBoss.ClientDisconnected(c)

	assert.Eventually(t, func() bool {
		_, found := r.pitBoss.Dealer("does-not-exist")
		return !found
	}, time.Second, 10*time.Millisecond)
}

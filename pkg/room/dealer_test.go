package room

import (
	"context"
	"testing"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/util"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/lock"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable/luegen"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable/maumau"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRoom struct {
	pitBoss *PitBoss
	store   *store.Memory
	locker  *lock.KeyedMutex
}

func newTestRoom(t *testing.T, opts Options) *testRoom {
	t.Helper()

	engine := playable.NewEngine(rng.NewSeeded(7), maumau.New(), luegen.New())
	s := store.NewMemory()
	locker := lock.NewKeyedMutex()
	p := NewPitBoss(engine, s, locker, opts)
	p.StartShift()
	t.Cleanup(p.EndShift)

	return &testRoom{pitBoss: p, store: s, locker: locker}
}

func (r *testRoom) lobby(t *testing.T) *session.Session {
	t.Helper()

	ctx := context.Background()
	code, err := util.JoinCode(rng.Crypto{}, func(code string) (bool, error) {
		return r.store.CodeExists(ctx, code)
	})
	require.NoError(t, err)

	s := session.New(session.MauMau, code, session.Settings{
		MaxPlayers:         4,
		DeckSize:           32,
		NumberOfStartCards: 5,
	})
	require.NoError(t, r.store.Create(ctx, s))
	return s
}

func (r *testRoom) connect(playerID, sessionID string) *Client {
	c := NewClient(nil, playerID, sessionID)
	r.pitBoss.ClientConnected(c)
	return c
}

func receive(t *testing.T, c *Client) *playable.Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		return msg.(*playable.Response)
	case <-time.After(time.Second):
		t.Fatalf("%s received nothing", c)
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		t.Fatalf("%s received unexpected %v", c, msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func act(action string, data playable.AdditionalData) *playable.PayloadIn {
	if data == nil {
		data = playable.AdditionalData{}
	}

	return &playable.PayloadIn{Action: action, AdditionalData: data}
}

func slowWatchdog() Options {
	opts := DefaultOptions()
	opts.WatchdogInterval = time.Hour
	return opts
}

func TestDealer_AddClient(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(&PitBoss{}, "s1")
	c := NewClient(nil, "p1", "s1")
	c2 := NewClient(nil, "p2", "s1")

	d.AddClient(c)
	d.AddClient(c2)
	a.Len(d.Clients(), 2)

	a.False(d.RemoveClient(c))
	a.True(d.RemoveClient(c2))
}

func TestDealer_AddClientReplacesConnection(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(&PitBoss{}, "s1")
	first := NewClient(nil, "p1", "s1")
	second := NewClient(nil, "p1", "s1")

	d.AddClient(first)
	d.AddClient(second)
	a.Len(d.Clients(), 1)
	a.Equal(CloseReasonReplaced, <-first.Close)

	// the replaced connection going away must not drop the new one
	a.False(d.RemoveClient(first))
	a.True(d.RemoveClient(second))
}

func TestDealer_ReceivedMessageBroadcasts(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, slowWatchdog())
	s := r.lobby(t)

	p1 := r.connect("p1", s.ID)
	p2 := r.connect("p2", s.ID)

	p1.ReceivedMessage(act(playable.ActionJoin, nil))
	for _, c := range []*Client{p1, p2} {
		msg := receive(t, c)
		a.Equal(playable.ActionJoin, msg.Action())
		a.Equal("p1", msg.Fields[playable.FieldPlayer])
	}

	saved, err := r.store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	a.Contains(saved.Players, "p1")
	a.True(saved.Updated.After(s.Updated) || saved.Updated.Equal(s.Updated))
	a.Equal(0, r.locker.Held())
}

func TestDealer_ReceivedMessageErrorOnlyToRequester(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, slowWatchdog())
	s := r.lobby(t)

	p1 := r.connect("p1", s.ID)
	p2 := r.connect("p2", s.ID)

	p1.ReceivedMessage(act(playable.ActionReady, playable.AdditionalData{"ready": true}))
	msg := receive(t, p1)
	a.Equal(string(playable.ErrNotInLobby), msg.Fields[playable.FieldError])
	assertSilent(t, p2)

	saved, err := r.store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	a.Empty(saved.Players)
}

func TestDealer_ReceivedMessageUnknownSession(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, slowWatchdog())

	c := r.connect("p1", "missing")
	c.ReceivedMessage(act(playable.ActionJoin, nil))

	msg := receive(t, c)
	a.Equal(string(playable.ErrUnknown), msg.Fields[playable.FieldError])
	a.Equal(CloseReasonUnknownError, <-c.Close)
	a.Equal(0, r.locker.Held())
}

func TestDealer_WaitsForSessionLock(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, slowWatchdog())
	s := r.lobby(t)
	c := r.connect("p1", s.ID)

	ctx := context.Background()
	require.NoError(t, r.locker.Lock(ctx, s.ID))

	done := make(chan struct{})
	go func() {
		c.ReceivedMessage(act(playable.ActionJoin, nil))
		close(done)
	}()

	assertSilent(t, c)
	a.NoError(r.locker.Unlock(ctx, s.ID))

	<-done
	a.Equal(playable.ActionJoin, receive(t, c).Action())
}

func TestDealer_AdmissionOrder(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, slowWatchdog())
	s := r.lobby(t)

	p1 := r.connect("p1", s.ID)
	p2 := r.connect("p2", s.ID)

	p1.ReceivedMessage(act(playable.ActionJoin, nil))
	p2.ReceivedMessage(act(playable.ActionJoin, nil))
	p1.ReceivedMessage(act(playable.ActionLeaveLobby, nil))

	expects := []string{playable.ActionJoin, playable.ActionJoin, playable.ActionLeaveLobby}
	for _, action := range expects {
		a.Equal(action, receive(t, p2).Action())
	}
}

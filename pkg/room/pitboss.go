package room

import (
	"sync"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/lock"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/store"
	"github.com/sirupsen/logrus"
)

// Options tune the dealers a PitBoss creates
type Options struct {
	// WatchdogInterval is how often a dealer checks the turn clock
	WatchdogInterval time.Duration

	// TurnTimeout is how long a player may hold the turn
	TurnTimeout time.Duration

	// ActionTimeout bounds lock acquisition plus load and save for one action
	ActionTimeout time.Duration
}

// DefaultOptions returns the production timings
func DefaultOptions() Options {
	return Options{
		WatchdogInterval: 5 * time.Second,
		TurnTimeout:      45 * time.Second,
		ActionTimeout:    10 * time.Second,
	}
}

type connection struct {
	client     *Client
	registered chan struct{}
}

// PitBoss is responsible for dispatching players to sessions
// It owns one Dealer per session that has a connection or a game in progress
type PitBoss struct {
	engine *playable.Engine
	store  store.Store
	locker lock.Locker
	opts   Options

	mu         sync.RWMutex
	dealers    map[string]*Dealer
	connect    chan connection
	disconnect chan *Client
	retire     chan *Dealer
	close      chan bool
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(engine *playable.Engine, s store.Store, locker lock.Locker, opts Options) *PitBoss {
	return &PitBoss{
		engine:     engine,
		store:      s,
		locker:     locker,
		opts:       opts,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan connection, 256),
		disconnect: make(chan *Client, 256),
		retire:     make(chan *Dealer, 256),
		close:      make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and every dealer
func (p *PitBoss) EndShift() {
	close(p.close)
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case conn := <-p.connect:
			client := conn.client
			logrus.WithField("client", client.String()).Debug("client connected")

			p.mu.Lock()
			dealer, found := p.dealers[client.sessionID]
			if !found {
				dealer = NewDealer(p, client.sessionID)
				dealer.StartShift()
				p.dealers[client.sessionID] = dealer
			}
			p.mu.Unlock()

			dealer.AddClient(client)
			close(conn.registered)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")

			p.mu.Lock()
			dealer, found := p.dealers[client.sessionID]
			if !found {
				p.mu.Unlock()
				logrus.WithField("session", client.sessionID).Warn("dealer not found")
				continue
			}

			if dealer.RemoveClient(client) {
				// a started game keeps its dealer so the watchdog can still evict idle players
				dealer.Idle()
			}
			p.mu.Unlock()
		case dealer := <-p.retire:
			p.mu.Lock()
			if p.dealers[dealer.sessionID] == dealer && len(dealer.Clients()) == 0 {
				logrus.WithField("session", dealer.sessionID).Debug("retiring dealer")
				dealer.EndShift()
				delete(p.dealers, dealer.sessionID)
			}
			p.mu.Unlock()
		case <-p.close:
			p.mu.Lock()
			for id, dealer := range p.dealers {
				dealer.EndShift()
				delete(p.dealers, id)
			}
			p.mu.Unlock()
			return
		}
	}
}

// ClientConnected is called when a client connects to the server
// It returns once the client is registered with its dealer
func (p *PitBoss) ClientConnected(client *Client) {
	registered := make(chan struct{})
	p.connect <- connection{client: client, registered: registered}
	<-registered
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// retireDealer asks the run loop to stop a dealer that has no clients left
// The run loop ignores the request if a client connected in the meantime
func (p *PitBoss) retireDealer(d *Dealer) {
	select {
	case p.retire <- d:
	case <-p.close:
	}
}

// Dealer returns the dealer of a session
func (p *PitBoss) Dealer(sessionID string) (*Dealer, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	d, ok := p.dealers[sessionID]
	return d, ok
}

// ActiveSessions returns the number of sessions that have a dealer
func (p *PitBoss) ActiveSessions() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.dealers)
}

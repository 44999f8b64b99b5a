package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/sirupsen/logrus"
)

// close reasons
const (
	CloseReasonReplaced     = "replaced by a newer connection"
	CloseReasonUnknownError = "unknown error"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	playerID  string
	sessionID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID, sessionID string) *Client {
	return &Client{
		send:      make(chan interface{}, 256),
		Close:     make(chan string, 1),
		Conn:      conn,
		playerID:  playerID,
		sessionID: sessionID,
	}
}

// Send send a message to the web client
// It never blocks, a full buffer drops the message
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send buffer full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Terminate asks the write loop to close the connection
// Messages already queued are flushed first
func (c *Client) Terminate(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// PlayerID returns the id of the connected player
func (c *Client) PlayerID() string {
	return c.playerID
}

// SessionID returns the id of the session the client is connected to
func (c *Client) SessionID() string {
	return c.sessionID
}

// String returns a traceable identifier for the player and session
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.playerID, c.sessionID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}

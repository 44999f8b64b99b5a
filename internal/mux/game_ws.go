package mux

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/room"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getGameWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.store.Load(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn, playerFromContext(r.Context()), s.ID)
		m.pitBoss.ClientConnected(client)

		waitForCloseFrame := make(chan bool)
		writeLoopDone := make(chan bool)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			client.Terminate("connection closed")
			close(waitForCloseFrame)

			select {
			case <-writeLoopDone:
			case <-time.After(writeWait):
			}

			_ = conn.Close()
		}()

		go func() {
			m.webSocketWriteLoop(client, waitForCloseFrame)
			close(writeLoopDone)
		}()

		if err := m.webSocketReadLoop(client); isDecodeError(err) {
			logrus.WithError(err).WithField("client", client.String()).Warn("could not decode message")
			client.Send(playable.NewErrorResponse(client.PlayerID(), playable.ErrUnknown))
			client.Terminate(room.CloseReasonUnknownError)
		}
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			// messages queued before the close request still go out
			flushing := true
			for flushing {
				select {
				case msg := <-client.SendChan():
					if !writeMessage(client, msg) {
						flushing = false
					}
				default:
					flushing = false
				}
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			if !writeMessage(client, msg) {
				return
			}
		}
	}
}

func writeMessage(client *room.Client, msg interface{}) bool {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		msgBytes, _ := json.Marshal(msg)
		logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")
	}

	_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.Conn.WriteJSON(msg); err != nil {
		logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
		return false
	}

	return true
}

func (m *Mux) webSocketReadLoop(client *room.Client) error {
	for {
		var msg playable.PayloadIn
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if isDecodeError(err) {
				return err
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Error("could not read message")
			}

			client.CloseError = err
			return err
		}

		client.ReceivedMessage(&msg)
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

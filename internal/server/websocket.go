package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/focustrap"
	"github.com/muurk/wcagdemo/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 256 << 10
)

// handleTrapSocket serves GET /ws/trap. Each connection owns one
// TrapSession; every text frame is a ClientMessage and gets exactly one
// ServerMessage back. The first frame the server sends is the empty
// session's state, carrying the session id.
func (s *Server) handleTrapSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	sess := NewTrapSession(id, s.logger)
	sess.onKey = func(a focustrap.Action) {
		s.metrics.trapKeys.WithLabelValues(a.String()).Inc()
	}

	s.track(id, conn)
	logging.LogSession(id, r.RemoteAddr, "opened")
	defer func() {
		sess.Close()
		_ = conn.Close()
		s.untrack(id)
		logging.LogSession(id, r.RemoteAddr, "closed")
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go ping(conn, done)

	if err := writeMessage(conn, sess.State()); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("trap session read error", zap.String("session", id), zap.Error(err))
			}
			return
		}

		var reply ServerMessage
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = ServerMessage{Type: MsgError, Session: id, Focusable: []string{}, Message: "invalid message: " + err.Error()}
		} else {
			reply = sess.Handle(msg)
		}
		if err := writeMessage(conn, reply); err != nil {
			s.logger.Debug("trap session write error", zap.String("session", id), zap.Error(err))
			return
		}
	}
}

func writeMessage(conn *websocket.Conn, msg ServerMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// ping keeps the read deadline alive on idle sessions. WriteControl may
// run concurrently with the handler's writes.
func ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mrsanskar19/self-transfer/internal/broadcast"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

const heartbeatInterval = 25 * time.Second

// handleEvents streams broadcast events over SSE. The subscriber lives for
// the connection lifetime and is unregistered on disconnect. There is no
// replay: clients poll the list endpoint after reconnecting.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub, err := broadcast.NewSubscriber(s.rt.Config().SubscriberBuffer, r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter expression")
		return
	}
	s.reg.Register(sub)
	defer s.reg.Unregister(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done():
			return
		case payload := <-sub.Events():
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if _, err := w.Write(payload); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			// Comment frame keeps proxies from idling out the connection.
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleEventsWS streams the same broadcast events over a WebSocket for
// clients that cannot hold an SSE connection.
func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	filterExpr := r.URL.Query().Get("filter")
	sub, err := broadcast.NewSubscriber(s.rt.Config().SubscriberBuffer, filterExpr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter expression")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", logpkg.Err(err))
		return
	}
	s.reg.Register(sub)

	closed := make(chan struct{})
	go func() {
		// Drain client frames to observe disconnects; inbound data is
		// ignored.
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		s.reg.Unregister(sub)
		_ = conn.Close()
	}()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case <-sub.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "queue overflow"),
				time.Now().Add(time.Second))
			return
		case payload := <-sub.Events():
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}

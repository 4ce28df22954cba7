package main

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const watchWriteTimeout = 5 * time.Second

// handleWatch upgrades the connection to a websocket and streams saved
// analysis store events until the client disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to accept websocket connection")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	events, cancel := s.analysis.Notifier().Subscribe()
	defer cancel()

	s.logger.WithField("remote", r.RemoteAddr).Debug("Watch subscriber connected")

	// The stream is write-only; CloseRead cancels the context when the
	// client disconnects.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case evt, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}

			writeCtx, cancelWrite := context.WithTimeout(ctx, watchWriteTimeout)
			err := wsjson.Write(writeCtx, conn, evt)
			cancelWrite()
			if err != nil {
				s.logger.WithError(err).Debug("Watch subscriber disconnected")
				return
			}
		}
	}
}

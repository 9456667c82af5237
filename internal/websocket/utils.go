package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single progress-event write.
	writeWait = 10 * time.Second
	// readWait is generous: clients only speak to ping.
	readWait = 5 * time.Minute
)

// WriteTyped sends one typed event payload over the connection.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON decodes the next client message under the read deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(readWait))
	return conn.ReadJSON(v)
}

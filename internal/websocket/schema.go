package websocket

import "encoding/json"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventProgress Event = "progress"
	EventPong     Event = "pong"
)

// ProgressResponse carries one import progress event. Progress is the
// raw payload published to Redis by the import service.
type ProgressResponse struct {
	Event    Event           `json:"event"`
	Progress json.RawMessage `json:"progress"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

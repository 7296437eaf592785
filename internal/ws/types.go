package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeSelect    MessageType = "select"
	MessageTypePromote   MessageType = "promote"
	MessageTypeTakeback  MessageType = "takeback"
	MessageTypeResign    MessageType = "resign"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a from/to move request.
type MovePayload struct {
	From SquarePayload `json:"from"`
	To   SquarePayload `json:"to"`
}

// SquarePayload addresses one board cell.
type SquarePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PromotePayload carries the promotion popup index.
type PromotePayload struct {
	Choice int `json:"choice"`
}

// ErrorPayload carries an error string back to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

package wsrouter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// Message is the envelope every inbound websocket frame must carry.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc processes one inbound message. The router does not interpret
// the message type; dispatch happens inside the handler so the set of event
// kinds stays a compile-time checked switch.
type HandlerFunc func(ctx context.Context, conn *websocket.Conn, msg Message) error

type Middleware func(HandlerFunc) HandlerFunc

type WSRouter struct {
	handler     HandlerFunc
	middlewares []Middleware
}

func New(handler HandlerFunc) *WSRouter {
	return &WSRouter{handler: handler}
}

func (r *WSRouter) Use(mw Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

// ServeConn reads messages from the connection until reading fails, passing
// each one through the middleware chain into the handler. The read error
// that terminated the loop is returned so the caller can run disconnect
// cleanup.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	handler := r.handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		msgCtx := context.WithValue(ctx, messageTypeCtxKey, msg.Type)
		if err := handler(msgCtx, conn, msg); err != nil {
			return err
		}
	}
}

// DecodePayload unmarshals a message payload into the handler's input type.
func DecodePayload[T any](msg Message) (T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

// File path: internal/chat/session.go

// Package chat serves the single-connection chat channel. Each websocket
// connection gets its own counter; replies go back on the same connection
// only and nothing is persisted or broadcast.
package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/common/telemetry"
)

// OpSendMessage is the only operation that produces a reply.
const OpSendMessage = "send_message"

// State is the lifecycle position of a session.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Frame is an inbound envelope. Op stays raw so that a non-string op is
// ignored like any other unknown op instead of failing the decode.
type Frame struct {
	Op      json.RawMessage `json:"op"`
	Message json.RawMessage `json:"message,omitempty"`
}

// decodeFrame accepts JSON objects only; null, arrays and scalars are
// malformed.
func decodeFrame(raw []byte) (Frame, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Frame{}, err
	}
	if fields == nil {
		return Frame{}, fmt.Errorf("frame is not an object")
	}
	return Frame{Op: fields["op"], Message: fields["message"]}, nil
}

// IsSendMessage reports whether op is exactly the string "send_message".
func (f Frame) IsSendMessage() bool {
	var op string
	if err := json.Unmarshal(f.Op, &op); err != nil {
		return false
	}
	return op == OpSendMessage
}

type reply struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

// Handler returns the websocket endpoint. Any origin is accepted, including
// none at all.
func Handler() http.Handler {
	return websocket.Server{
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler:   serve,
	}
}

type session struct {
	conn  *websocket.Conn
	state State
	seq   int64
}

func serve(conn *websocket.Conn) {
	s := &session{conn: conn, state: StateConnecting}
	s.transition(StateOpen)
	done := telemetry.ChatSessionOpened()
	defer func() {
		_ = conn.Close()
		done()
		s.transition(StateClosed)
	}()
	s.run()
}

// run blocks until the first failure. Failures are not reported to the
// client: the session simply ends.
func (s *session) run() {
	logger := common.Logger()
	for {
		// The counter moves once per frame received, whatever its op.
		s.seq++
		var raw string
		if err := websocket.Message.Receive(s.conn, &raw); err != nil {
			logger.Debug("chat: receive ended", "error", err)
			return
		}
		telemetry.RecordChatFrame()
		frame, err := decodeFrame([]byte(raw))
		if err != nil {
			logger.Debug("chat: malformed frame", "error", err)
			return
		}
		if !frame.IsSendMessage() {
			continue
		}
		text, err := messageText(frame.Message)
		if err != nil {
			logger.Debug("chat: unusable message", "error", err)
			return
		}
		out := reply{Op: OpSendMessage, Message: fmt.Sprintf("%d %s", s.seq, text)}
		if err := websocket.JSON.Send(s.conn, out); err != nil {
			logger.Debug("chat: send failed", "error", err)
			return
		}
	}
}

func (s *session) transition(next State) {
	common.Logger().Debug("chat: session state", "from", s.state.String(), "to", next.String(), "frames", s.seq)
	s.state = next
}

// messageText returns string payloads as-is and any other JSON value in its
// compact textual form. A missing message is an error.
func messageText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("message field missing")
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}

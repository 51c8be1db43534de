// Package bridge implements the invoke/event protocol spoken between the
// player and the CineVault backend. Every message is one JSON frame:
//
//	request  {"id":1,"cmd":"get_playback_state","args":{"mediaId":7}}
//	response {"id":1,"result":{...}}   or   {"id":1,"error":"message"}
//	event    {"event":"scan-progress","payload":{...}}
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ProtocolVersion is the bridge protocol version this package speaks.
const ProtocolVersion = "1.0.0"

var (
	ErrClosed              = errors.New("bridge connection closed")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrIncompatibleVersion = errors.New("incompatible bridge version")
	ErrInvalidArgs         = errors.New("invalid args")
)

// Frame is the single wire message type. Which fields are set decides
// whether it is a request, a response, or an event.
type Frame struct {
	ID      uint64          `json:"id,omitempty"`
	Cmd     string          `json:"cmd,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IsEvent reports whether the frame is a push event.
func (f Frame) IsEvent() bool { return f.Event != "" }

// IsRequest reports whether the frame asks the peer to run a command.
func (f Frame) IsRequest() bool { return f.Cmd != "" }

// RemoteError is a command failure reported by the peer.
type RemoteError struct {
	Command string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// NewEvent builds an event frame from any JSON-encodable payload.
func NewEvent(name string, payload any) (Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("encode %s payload: %w", name, err)
	}
	return Frame{Event: name, Payload: raw}, nil
}

// DecodeArgs unmarshals request args into v. Missing args decode as {}.
func DecodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return nil
}

package server

import (
	stderrors "errors"

	"github.com/goccy/go-json"

	"github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/vango"
)

// clientMessage is one event sent by the page script.
type clientMessage struct {
	HID    string  `json:"hid"`
	Type   string  `json:"type"`
	Value  *string `json:"value,omitempty"`
	Key    string  `json:"key,omitempty"`
	Code   string  `json:"code,omitempty"`
	Ctrl   bool    `json:"ctrl,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
	Alt    bool    `json:"alt,omitempty"`
	Meta   bool    `json:"meta,omitempty"`
	Repeat bool    `json:"repeat,omitempty"`
}

// serverMessage is the reply to one event. HTML is set when the tree
// changed and replaces the content of the root element.
type serverMessage struct {
	Seq   uint64      `json:"seq"`
	HTML  string      `json:"html,omitempty"`
	Error *errorReply `json:"error,omitempty"`
}

type errorReply struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func decodeClientMessage(data []byte) (clientMessage, error) {
	var m clientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return m, err
	}
	if m.HID == "" || m.Type == "" {
		return m, stderrors.New("missing hid or type")
	}
	return m, nil
}

func encodeServerMessage(m serverMessage) ([]byte, error) {
	return json.Marshal(m)
}

// event converts the message to an Event with the payload its type expects.
func (m clientMessage) event() *Event {
	var payload any
	switch m.Type {
	case "keydown", "keyup":
		payload = vango.KeyboardEvent{
			Key:      m.Key,
			Code:     m.Code,
			CtrlKey:  m.Ctrl,
			ShiftKey: m.Shift,
			AltKey:   m.Alt,
			MetaKey:  m.Meta,
			Repeat:   m.Repeat,
		}
	case "input", "change":
		if m.Value != nil {
			payload = *m.Value
		} else {
			payload = ""
		}
	}
	return NewEvent(m.HID, m.Type, payload)
}

func errorMessage(seq uint64, err error) serverMessage {
	reply := &errorReply{Message: err.Error()}
	var ve *errors.VangoError
	if stderrors.As(err, &ve) {
		reply.Code = ve.Code
		reply.Message = ve.Message
	}
	return serverMessage{Seq: seq, Error: reply}
}

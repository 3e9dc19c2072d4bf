// Package protocol implements the line-delimited JSON wire format shared by
// the kotoba server and client. Each message is a single envelope per line:
//
//	{"header": <command-or-status>, "payload": <string carrying JSON>}\n
//
// The payload is double-encoded: the envelope is JSON, and the payload field
// is itself a JSON document serialized to a string.
package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dkurose/kotoba/internal/common"
)

// Response status headers.
const (
	StatusGood = "GOOD"
	StatusBad  = "BAD"
)

// Request command headers.
const (
	CmdCreateUser       = "CREATE_USER"
	CmdGetAccountKeys   = "GET_ACCOUNT_KEYS"
	CmdValidateKey      = "VALIDATE_KEY"
	CmdCreateKanji      = "CREATE_KANJI"
	CmdCreateVocab      = "CREATE_VOCAB"
	CmdCreateGroup      = "CREATE_GROUP"
	CmdCreateGroupKanji = "CREATE_GROUP_KANJI"
	CmdCreateGroupVocab = "CREATE_GROUP_VOCAB"
)

// Frame is one newline-terminated protocol message.
type Frame struct {
	Header  string `json:"header"`
	Payload string `json:"payload"`
}

// Encode builds a Frame for header, serializing payload into the inner JSON
// string. A nil payload produces an empty payload string.
func Encode(header string, payload any) (Frame, error) {
	if payload == nil {
		return Frame{Header: header}, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("encoding payload: %w", err)
	}
	return Frame{Header: header, Payload: string(b)}, nil
}

// Decode unmarshals the inner payload document into v. An empty or
// non-JSON payload yields ErrInvalidFormat; the connection stays usable.
func (f Frame) Decode(v any) error {
	if err := json.Unmarshal([]byte(f.Payload), v); err != nil {
		return common.ErrInvalidFormat
	}
	return nil
}

// Write serializes f followed by a single newline terminator.
func Write(w io.Writer, f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return err
	}
	return nil
}

// Read consumes exactly one newline-terminated frame from r.
//
// A clean close before any bytes arrive returns io.EOF. Stream closure
// mid-frame, or an envelope that is not valid JSON, returns
// ErrMalformedFrame and the caller must drop the connection. No maximum
// frame length is enforced; callers accepting untrusted peers must defend
// against unbounded buffering themselves.
func Read(r *bufio.Reader) (Frame, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) == 0 {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("%w: %v", common.ErrMalformedFrame, err)
	}
	var f Frame
	if err := json.Unmarshal(line, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", common.ErrMalformedFrame, err)
	}
	return f, nil
}

// ErrorPayload is the inner document of every BAD response: a short machine
// code plus a human-readable message.
type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

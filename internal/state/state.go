// State model shared by reporting clients, the tracker, and receivers
package state

import (
	"encoding/json"
	"fmt"
)

// Tag discriminates the three state variants.
type Tag string

const (
	TagIdle  Tag = "Idle"
	TagValid Tag = "Valid"
	TagError Tag = "Error"
)

// State describes the operational condition of a reporter. It is a closed
// tagged union: Idle and Valid carry no payload, Error carries a
// human-readable cause. The zero value is Idle. Values are comparable with
// ==, which matches tag and, for errors, message.
type State struct {
	tag     Tag
	message string
}

// Idle reports that a subsystem is up but has nothing to do.
func Idle() State {
	return State{tag: TagIdle}
}

// Valid reports that a subsystem is up and working.
func Valid() State {
	return State{tag: TagValid}
}

// Error reports a failure with a human-readable cause.
func Error(message string) State {
	return State{tag: TagError, message: message}
}

// Tag returns the active variant.
func (s State) Tag() Tag {
	if s.tag == "" {
		return TagIdle
	}
	return s.tag
}

// Message returns the error cause, or "" for Idle and Valid.
func (s State) Message() string {
	return s.message
}

// IsError reports whether the Error variant is active. The rate limiter
// never suppresses error states.
func (s State) IsError() bool {
	return s.tag == TagError
}

func (s State) String() string {
	if s.IsError() {
		return fmt.Sprintf("Error(%q)", s.message)
	}
	return string(s.Tag())
}

// stateJSON is the wire form: the tag plus an optional payload, so a
// receiver can discriminate variants without parsing free text.
type stateJSON struct {
	Tag     Tag    `json:"tag"`
	Message string `json:"message,omitempty"`
}

// MarshalJSON encodes the state as {"tag":...} with a message field only
// for the Error variant.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{Tag: s.Tag(), Message: s.message})
}

// UnmarshalJSON decodes the tagged form and rejects unknown tags.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Tag {
	case TagIdle:
		*s = Idle()
	case TagValid:
		*s = Valid()
	case TagError:
		*s = Error(raw.Message)
	default:
		return fmt.Errorf("unknown state tag %q", raw.Tag)
	}
	return nil
}

package model

import (
	"encoding"
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when an action name is not recognised.
var ErrInvalidAction = errors.New("model: invalid action")

// Action is a user action applied to a word's learning record.
type Action string

const (
	ActionView           Action = "view"
	ActionMaster         Action = "master"
	ActionToggleFavorite Action = "toggle_favorite"
)

var (
	_ encoding.TextMarshaler   = Action("")
	_ encoding.TextUnmarshaler = (*Action)(nil)
)

// IsValid reports whether a is one of the known actions.
func (a Action) IsValid() bool {
	switch a {
	case ActionView, ActionMaster, ActionToggleFavorite:
		return true
	}
	return false
}

func (a Action) String() string { return string(a) }

// ParseAction converts a name into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
	return a, nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, string(a))
	}
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	v, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

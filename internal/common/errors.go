// Package common defines shared constants and sentinel errors used across
// client and server layers of kotoba. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Protocol-level errors. A malformed frame terminates the connection;
	// an ill-formed payload does not.
	ErrMalformedFrame = errors.New("malformed frame")
	ErrInvalidFormat  = errors.New("invalid format")

	// Account errors.
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidUser     = errors.New("invalid user")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnverified      = errors.New("unverified session")
	ErrSessionBound    = errors.New("session already bound")

	// Entry errors (uniqueness is scoped per owner).
	ErrKanjiExists  = errors.New("kanji already exists")
	ErrVocabExists  = errors.New("vocab already exists")
	ErrInvalidKanji = errors.New("invalid kanji")
	ErrInvalidVocab = errors.New("invalid vocab")

	// Group errors.
	ErrGroupExists    = errors.New("group already exists")
	ErrInvalidGroup   = errors.New("invalid group")
	ErrInvalidHexcode = errors.New("invalid colour hexcode")
	ErrAlreadyAdded   = errors.New("entry already added to group")
	ErrAlreadyRemoved = errors.New("entry already removed from group")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)

// Package models defines the persisted record types: users, lexical entries
// (kanji and vocab) and user-defined groups.
package models

import "time"

// User is an account. Hash and Salt are fixed-width byte sequences produced
// by the client-side key derivation; the server never stores a plaintext
// password. Deleting a user cascades to every record it owns.
type User struct {
	ID        string
	Username  string
	Hash      []byte
	Salt      []byte
	CreatedAt time.Time
}

package models

// Group is a user-defined collection of entries. Vocab selects the kind: a
// group holds either kanji entries or vocab entries, never both. Title is
// unique per (owner, kind). Colour, when set, is a "#RRGGBB" string.
type Group struct {
	ID     string
	Title  string
	Colour *string
	Vocab  bool
	UserID string
}

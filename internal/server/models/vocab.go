package models

// Vocab is a phrase entry. Phrase is unique per owner. KanjiRefs holds the
// symbols of every kanji entry owned by the same user that occurs within
// Phrase; the reciprocal reference lives in that kanji's VocabRefs.
type Vocab struct {
	ID          string
	Phrase      string
	Meaning     string
	Reading     []string
	Description *string
	KanjiRefs   []string
	UserID      string
	GroupID     *string
}

package models

// Kanji is a character entry. Symbol is unique per owner. VocabRefs holds
// the phrase texts of every vocab entry owned by the same user whose phrase
// contains Symbol; the reciprocal reference lives in that vocab's KanjiRefs.
type Kanji struct {
	ID          string
	Symbol      string
	Meaning     string
	Onyomi      []string
	Kunyomi     []string
	Description *string
	VocabRefs   []string
	UserID      string
	GroupID     *string
}

package protocol

import "github.com/dkurose/kotoba/internal/common"

// Request payload shapes, shared by client and server. Validate reports
// ErrInvalidFormat when a required field is missing or mistyped, mirroring
// the strictness of the dispatcher's contract: a request that fails
// validation is answered BAD but leaves the connection open.

// NewUser registers an account. Hash and Salt are the client-derived key and
// the random salt it was derived with; the server never sees a plaintext
// password.
type NewUser struct {
	Username string `json:"username"`
	Hash     []byte `json:"hash"`
	Salt     []byte `json:"salt"`
}

func (p *NewUser) Validate() error {
	if p.Username == "" || len(p.Hash) == 0 || len(p.Salt) == 0 {
		return common.ErrInvalidFormat
	}
	return nil
}

// AccountKeysRequest asks for the stored salt of an account (login round
// trip one).
type AccountKeysRequest struct {
	Username string `json:"user_username"`
}

func (p *AccountKeysRequest) Validate() error {
	if p.Username == "" {
		return common.ErrInvalidFormat
	}
	return nil
}

// AccountKeysResponse carries the stored salt back to the client.
type AccountKeysResponse struct {
	Salt []byte `json:"salt"`
}

// KeyValidation submits the client-derived key for comparison (login round
// trip two). Success binds the connection's session to the user.
type KeyValidation struct {
	Username string `json:"user_username"`
	Hash     []byte `json:"user_hash"`
}

func (p *KeyValidation) Validate() error {
	if p.Username == "" || len(p.Hash) == 0 {
		return common.ErrInvalidFormat
	}
	return nil
}

// NewKanji creates a character entry. VocabRefs is normally empty on the
// wire; the server fills in cross-references at creation time.
type NewKanji struct {
	Symbol      string   `json:"symbol"`
	Meaning     string   `json:"meaning"`
	Onyomi      []string `json:"onyomi"`
	Kunyomi     []string `json:"kunyomi"`
	Description *string  `json:"description,omitempty"`
	VocabRefs   []string `json:"vocab_refs"`
}

func (p *NewKanji) Validate() error {
	if p.Symbol == "" || p.Meaning == "" || p.Onyomi == nil || p.Kunyomi == nil || p.VocabRefs == nil {
		return common.ErrInvalidFormat
	}
	return nil
}

// NewVocab creates a phrase entry, the counterpart of NewKanji.
type NewVocab struct {
	Phrase      string   `json:"phrase"`
	Meaning     string   `json:"meaning"`
	Reading     []string `json:"reading"`
	Description *string  `json:"description,omitempty"`
	KanjiRefs   []string `json:"kanji_refs"`
}

func (p *NewVocab) Validate() error {
	if p.Phrase == "" || p.Meaning == "" || p.Reading == nil || p.KanjiRefs == nil {
		return common.ErrInvalidFormat
	}
	return nil
}

// NewGroup creates a kind-exclusive entry collection. Vocab selects the kind
// and is required, hence the pointer. Colour, when present, must be a
// 6-hex-digit RGB string like "#1a2B3c".
type NewGroup struct {
	Title  string  `json:"title"`
	Colour *string `json:"colour,omitempty"`
	Vocab  *bool   `json:"vocab"`
}

func (p *NewGroup) Validate() error {
	if p.Title == "" || p.Vocab == nil {
		return common.ErrInvalidFormat
	}
	return nil
}

// GroupKanji adds a character entry to a character group.
type GroupKanji struct {
	GroupTitle  string `json:"group_title"`
	KanjiSymbol string `json:"kanji_symbol"`
}

func (p *GroupKanji) Validate() error {
	if p.GroupTitle == "" || p.KanjiSymbol == "" {
		return common.ErrInvalidFormat
	}
	return nil
}

// GroupVocab adds a phrase entry to a phrase group.
type GroupVocab struct {
	GroupTitle  string `json:"group_title"`
	VocabPhrase string `json:"vocab_phrase"`
}

func (p *GroupVocab) Validate() error {
	if p.GroupTitle == "" || p.VocabPhrase == "" {
		return common.ErrInvalidFormat
	}
	return nil
}

// Package dispatch maps incoming request frames to handlers, enforcing the
// per-connection session state machine (unauthenticated -> authenticated,
// one-way) and translating the closed error set into wire responses.
package dispatch

import (
	"context"
	"errors"

	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/logging"
	"github.com/dkurose/kotoba/internal/protocol"
	"github.com/dkurose/kotoba/internal/server/models"
)

// UserService is the slice of account operations reachable from the wire.
type UserService interface {
	Register(ctx context.Context, username string, hash, salt []byte) (*models.User, error)
	AccountSalt(ctx context.Context, username string) ([]byte, error)
	ValidateKey(ctx context.Context, username string, candidate []byte) (*models.User, error)
	Verify(ctx context.Context, userID string) (*models.User, error)
}

// LexiconService is the slice of entry operations reachable from the wire.
type LexiconService interface {
	CreateKanji(ctx context.Context, user *models.User, k *models.Kanji) error
	CreateVocab(ctx context.Context, user *models.User, v *models.Vocab) error
}

// GroupService is the slice of group operations reachable from the wire.
type GroupService interface {
	Create(ctx context.Context, user *models.User, g *models.Group) error
	AddKanji(ctx context.Context, user *models.User, groupTitle, symbol string) error
	AddVocab(ctx context.Context, user *models.User, groupTitle, phrase string) error
}

// wireError pairs a sentinel with its machine code and user-facing message.
type wireError struct {
	err     error
	code    string
	message string
}

var wireErrors = []wireError{
	{common.ErrInvalidFormat, "INVALID_FORMAT", "Request body format is ill-formed!"},
	{common.ErrUserExists, "USER_EXISTS", "Username already exists! Please enter a different username..."},
	{common.ErrInvalidUser, "INVALID_USER", "User does not exist! Please enter a valid username..."},
	{common.ErrInvalidPassword, "INVALID_PASSWORD", "Password is invalid! Please re-enter your password..."},
	{common.ErrUnverified, "UNVERIFIED", "Unverified request! Login to a valid account to make this request..."},
	{common.ErrSessionBound, "ALREADY_VERIFIED", "Connection is already verified for another account!"},
	{common.ErrKanjiExists, "KANJI_EXISTS", "Kanji already exists in database!"},
	{common.ErrVocabExists, "VOCAB_EXISTS", "Vocab already exists in database!"},
	{common.ErrGroupExists, "GROUP_EXISTS", "Group already exists in database!"},
	{common.ErrInvalidKanji, "INVALID_KANJI", "Kanji selected does not exist! Pick a valid Kanji..."},
	{common.ErrInvalidVocab, "INVALID_VOCAB", "Vocab selected does not exist! Pick a valid vocab..."},
	{common.ErrInvalidGroup, "INVALID_GROUP", "Group selected does not exist! Pick a valid group..."},
	{common.ErrInvalidHexcode, "INVALID_HEXCODE", "Invalid format for hexcode! Provide a valid colour hexcode..."},
	{common.ErrAlreadyAdded, "ALREADY_ADDED", "Entry already added to group!"},
	{common.ErrAlreadyRemoved, "ALREADY_REMOVED", "Entry already removed from group!"},
}

// Dispatcher routes one decoded frame to its handler. Any handler failure is
// converted to a BAD response; the connection is never torn down from here.
type Dispatcher struct {
	users   UserService
	lexicon LexiconService
	groups  GroupService
	logger  logging.Logger
}

// New constructs a Dispatcher over the given services.
func New(us UserService, ls LexiconService, gs GroupService, l logging.Logger) *Dispatcher {
	return &Dispatcher{users: us, lexicon: ls, groups: gs, logger: l.With("module", "dispatch")}
}

func badFrame(code, message string) protocol.Frame {
	f, _ := protocol.Encode(protocol.StatusBad, &protocol.ErrorPayload{Error: message, Code: code})
	return f
}

func (d *Dispatcher) fail(ctx context.Context, err error) protocol.Frame {
	for _, we := range wireErrors {
		if errors.Is(err, we.err) {
			return badFrame(we.code, we.message)
		}
	}
	d.logger.Error(ctx, "unhandled dispatch error", "error", err)
	return badFrame("INTERNAL", "Internal server error! Please try again...")
}

// Dispatch resolves req.Header against the command catalog, runs the handler
// with the connection's session state, and returns the response frame.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session, req protocol.Frame) protocol.Frame {
	var (
		result any
		err    error
	)

	switch req.Header {
	case protocol.CmdCreateUser:
		err = d.createUser(ctx, req)
	case protocol.CmdGetAccountKeys:
		result, err = d.getAccountKeys(ctx, req)
	case protocol.CmdValidateKey:
		err = d.validateKey(ctx, sess, req)
		// This command addresses the account by username, so the
		// unknown-user message names the username rather than the user.
		if errors.Is(err, common.ErrInvalidUser) {
			return badFrame("INVALID_USER", "Username does not exist! Please enter a valid username...")
		}
	case protocol.CmdCreateKanji:
		err = d.withUser(ctx, sess, func(user *models.User) error {
			return d.createKanji(ctx, user, req)
		})
	case protocol.CmdCreateVocab:
		err = d.withUser(ctx, sess, func(user *models.User) error {
			return d.createVocab(ctx, user, req)
		})
	case protocol.CmdCreateGroup:
		err = d.withUser(ctx, sess, func(user *models.User) error {
			return d.createGroup(ctx, user, req)
		})
	case protocol.CmdCreateGroupKanji:
		err = d.withUser(ctx, sess, func(user *models.User) error {
			return d.addGroupKanji(ctx, user, req)
		})
	case protocol.CmdCreateGroupVocab:
		err = d.withUser(ctx, sess, func(user *models.User) error {
			return d.addGroupVocab(ctx, user, req)
		})
	default:
		return badFrame("", "Invalid request header!")
	}

	if err != nil {
		return d.fail(ctx, err)
	}

	resp, err := protocol.Encode(protocol.StatusGood, result)
	if err != nil {
		return d.fail(ctx, err)
	}
	return resp
}

// withUser gates authenticated-only commands and re-verifies that the bound
// account still exists before running fn.
func (d *Dispatcher) withUser(ctx context.Context, sess *Session, fn func(user *models.User) error) error {
	if !sess.Authenticated() {
		return common.ErrUnverified
	}
	user, err := d.users.Verify(ctx, sess.User().ID)
	if err != nil {
		return err
	}
	return fn(user)
}

func (d *Dispatcher) createUser(ctx context.Context, req protocol.Frame) error {
	var p protocol.NewUser
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := d.users.Register(ctx, p.Username, p.Hash, p.Salt)
	return err
}

func (d *Dispatcher) getAccountKeys(ctx context.Context, req protocol.Frame) (any, error) {
	var p protocol.AccountKeysRequest
	if err := req.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	salt, err := d.users.AccountSalt(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	return &protocol.AccountKeysResponse{Salt: salt}, nil
}

func (d *Dispatcher) validateKey(ctx context.Context, sess *Session, req protocol.Frame) error {
	var p protocol.KeyValidation
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	user, err := d.users.ValidateKey(ctx, p.Username, p.Hash)
	if err != nil {
		return err
	}
	return sess.Bind(user)
}

func (d *Dispatcher) createKanji(ctx context.Context, user *models.User, req protocol.Frame) error {
	var p protocol.NewKanji
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return d.lexicon.CreateKanji(ctx, user, &models.Kanji{
		Symbol:      p.Symbol,
		Meaning:     p.Meaning,
		Onyomi:      p.Onyomi,
		Kunyomi:     p.Kunyomi,
		Description: p.Description,
		VocabRefs:   p.VocabRefs,
	})
}

func (d *Dispatcher) createVocab(ctx context.Context, user *models.User, req protocol.Frame) error {
	var p protocol.NewVocab
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return d.lexicon.CreateVocab(ctx, user, &models.Vocab{
		Phrase:      p.Phrase,
		Meaning:     p.Meaning,
		Reading:     p.Reading,
		Description: p.Description,
		KanjiRefs:   p.KanjiRefs,
	})
}

func (d *Dispatcher) createGroup(ctx context.Context, user *models.User, req protocol.Frame) error {
	var p protocol.NewGroup
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return d.groups.Create(ctx, user, &models.Group{
		Title:  p.Title,
		Colour: p.Colour,
		Vocab:  *p.Vocab,
	})
}

func (d *Dispatcher) addGroupKanji(ctx context.Context, user *models.User, req protocol.Frame) error {
	var p protocol.GroupKanji
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return d.groups.AddKanji(ctx, user, p.GroupTitle, p.KanjiSymbol)
}

func (d *Dispatcher) addGroupVocab(ctx context.Context, user *models.User, req protocol.Frame) error {
	var p protocol.GroupVocab
	if err := req.Decode(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return d.groups.AddVocab(ctx, user, p.GroupTitle, p.VocabPhrase)
}

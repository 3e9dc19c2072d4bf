package services

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/dbx"
	"github.com/dkurose/kotoba/internal/server/models"
	"github.com/dkurose/kotoba/internal/server/repositories/groups"
	"github.com/dkurose/kotoba/internal/server/repositories/kanji"
	"github.com/dkurose/kotoba/internal/server/repositories/users"
	"github.com/dkurose/kotoba/internal/server/repositories/vocab"
)

// In-memory repositories. The services only touch the database through the
// repository interfaces, so the fakes carry all state; the sqlmock DB handle
// exists to satisfy the BeginTx/Commit shape of dbx.WithTx.

type fakeUsersRepo struct {
	byID      map[string]*models.User
	seq       int
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: make(map[string]*models.User)}
}

func (r *fakeUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, common.ErrInternal
		}
	}
	r.seq++
	user.ID = "u-" + strconv.Itoa(r.seq)
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUsersRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeKanjiRepo struct {
	byID map[string]*models.Kanji
	seq  int
}

func newFakeKanjiRepo() *fakeKanjiRepo {
	return &fakeKanjiRepo{byID: make(map[string]*models.Kanji)}
}

func (r *fakeKanjiRepo) Create(_ context.Context, k *models.Kanji) (*models.Kanji, error) {
	r.seq++
	k.ID = "k-" + strconv.Itoa(r.seq)
	if k.VocabRefs == nil {
		k.VocabRefs = []string{}
	}
	cp := *k
	r.byID[k.ID] = &cp
	return k, nil
}

func (r *fakeKanjiRepo) GetBySymbol(_ context.Context, userID, symbol string) (*models.Kanji, error) {
	for _, k := range r.byID {
		if k.UserID == userID && k.Symbol == symbol {
			cp := *k
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeKanjiRepo) ListByUser(_ context.Context, userID string) ([]*models.Kanji, error) {
	var out []*models.Kanji
	for _, k := range r.byID {
		if k.UserID == userID {
			cp := *k
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeKanjiRepo) ListByGroup(_ context.Context, groupID string) ([]*models.Kanji, error) {
	var out []*models.Kanji
	for _, k := range r.byID {
		if k.GroupID != nil && *k.GroupID == groupID {
			cp := *k
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeKanjiRepo) UpdateVocabRefs(_ context.Context, id string, refs []string) error {
	k, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	k.VocabRefs = append([]string(nil), refs...)
	return nil
}

func (r *fakeKanjiRepo) SetGroup(_ context.Context, id string, groupID *string) error {
	k, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	k.GroupID = groupID
	return nil
}

func (r *fakeKanjiRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeKanjiRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, k := range r.byID {
		if k.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeVocabRepo struct {
	byID map[string]*models.Vocab
	seq  int
}

func newFakeVocabRepo() *fakeVocabRepo {
	return &fakeVocabRepo{byID: make(map[string]*models.Vocab)}
}

func (r *fakeVocabRepo) Create(_ context.Context, v *models.Vocab) (*models.Vocab, error) {
	r.seq++
	v.ID = "v-" + strconv.Itoa(r.seq)
	if v.KanjiRefs == nil {
		v.KanjiRefs = []string{}
	}
	cp := *v
	r.byID[v.ID] = &cp
	return v, nil
}

func (r *fakeVocabRepo) GetByPhrase(_ context.Context, userID, phrase string) (*models.Vocab, error) {
	for _, v := range r.byID {
		if v.UserID == userID && v.Phrase == phrase {
			cp := *v
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeVocabRepo) ListByUser(_ context.Context, userID string) ([]*models.Vocab, error) {
	var out []*models.Vocab
	for _, v := range r.byID {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) ListByGroup(_ context.Context, groupID string) ([]*models.Vocab, error) {
	var out []*models.Vocab
	for _, v := range r.byID {
		if v.GroupID != nil && *v.GroupID == groupID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) UpdateKanjiRefs(_ context.Context, id string, refs []string) error {
	v, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	v.KanjiRefs = append([]string(nil), refs...)
	return nil
}

func (r *fakeVocabRepo) SetGroup(_ context.Context, id string, groupID *string) error {
	v, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	v.GroupID = groupID
	return nil
}

func (r *fakeVocabRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeVocabRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, v := range r.byID {
		if v.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeGroupsRepo struct {
	byID map[string]*models.Group
	seq  int
}

func newFakeGroupsRepo() *fakeGroupsRepo {
	return &fakeGroupsRepo{byID: make(map[string]*models.Group)}
}

func (r *fakeGroupsRepo) Create(_ context.Context, g *models.Group) (*models.Group, error) {
	r.seq++
	g.ID = "g-" + strconv.Itoa(r.seq)
	cp := *g
	r.byID[g.ID] = &cp
	return g, nil
}

func (r *fakeGroupsRepo) GetByTitle(_ context.Context, userID, title string, vocab bool) (*models.Group, error) {
	for _, g := range r.byID {
		if g.UserID == userID && g.Title == title && g.Vocab == vocab {
			cp := *g
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeGroupsRepo) UpdateColour(_ context.Context, id string, colour *string) error {
	g, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	g.Colour = colour
	return nil
}

func (r *fakeGroupsRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeGroupsRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, g := range r.byID {
		if g.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeRepoManager struct {
	users  *fakeUsersRepo
	kanji  *fakeKanjiRepo
	vocab  *fakeVocabRepo
	groups *fakeGroupsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:  newFakeUsersRepo(),
		kanji:  newFakeKanjiRepo(),
		vocab:  newFakeVocabRepo(),
		groups: newFakeGroupsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Kanji(dbx.DBTX) kanji.Repository              { return m.kanji }
func (m *fakeRepoManager) Vocab(dbx.DBTX) vocab.Repository              { return m.vocab }
func (m *fakeRepoManager) Groups(dbx.DBTX) groups.Repository            { return m.groups }

// fixture wires the fakes behind a sqlmock DB handle so dbx.WithTx sees a
// working BeginTx/Commit/Rollback sequence.
type fixture struct {
	db   *sql.DB
	mock sqlmock.Sqlmock
	rm   *fakeRepoManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &fixture{db: db, mock: mock, rm: newFakeRepoManager()}
}

// expectTx queues one committed transaction on the mock.
func (f *fixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

// expectTxRollback queues one rolled-back transaction on the mock.
func (f *fixture) expectTxRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

// seedUser registers a user directly in the fake repository.
func (f *fixture) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.rm.users.Create(context.Background(), &models.User{
		Username: username,
		Hash:     []byte("hash"),
		Salt:     []byte("salt"),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

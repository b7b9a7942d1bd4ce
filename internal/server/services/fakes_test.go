package services

import (
	"context"
	"database/sql"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/dbx"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/generations"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/users"
	"github.com/dmitrijs2005/cocreate/internal/server/textgen"
)

// memStore keeps users, generations and both ledgers in memory with the same
// observable behavior as the PostgreSQL repositories.
type memStore struct {
	mu       sync.Mutex
	nextUser int64
	nextGen  int64
	users    map[int64]*models.User
	gens     map[int64]*models.Generation
	failNext error
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]*models.User{}, gens: map[int64]*models.Generation{}}
}

func (m *memStore) takeErr() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func clone(u *models.User) *models.User {
	c := *u
	c.Generations = slices.Clone(u.Generations)
	c.FavoriteGenerations = slices.Clone(u.FavoriteGenerations)
	return &c
}

func (m *memStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	for _, existing := range m.users {
		if existing.UserName == u.UserName {
			return nil, common.ErrUsernameTaken
		}
	}
	m.nextUser++
	u.ID = m.nextUser
	u.Generations = []int64{}
	u.FavoriteGenerations = []int64{}
	m.users[u.ID] = clone(u)
	return u, nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

func (m *memStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if u.UserName == username {
			return clone(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memStore) GetPasswordHash(_ context.Context, id int64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u.PasswordHash, nil
}

func (m *memStore) update(id int64, fn func(u *models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}
	u, ok := m.users[id]
	if !ok {
		return common.ErrNotFound
	}
	fn(u)
	return nil
}

func (m *memStore) UpdatePassword(_ context.Context, id int64, hash []byte) error {
	return m.update(id, func(u *models.User) { u.PasswordHash = hash })
}

func (m *memStore) UpdateContentType(_ context.Context, id int64, v string) error {
	return m.update(id, func(u *models.User) { u.ContentType = v })
}

func (m *memStore) UpdateTargetAudience(_ context.Context, id int64, v string) error {
	return m.update(id, func(u *models.User) { u.TargetAudience = v })
}

func (m *memStore) UpdateAdditionalContext(_ context.Context, id int64, v string) error {
	return m.update(id, func(u *models.User) { u.AdditionalContext = v })
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) AppendGeneration(_ context.Context, userID, genID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}
	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	if !u.Owns(genID) {
		u.Generations = append(u.Generations, genID)
	}
	return nil
}

func (m *memStore) AddFavorite(_ context.Context, userID, genID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || !u.Owns(genID) {
		return common.ErrGenerationNotOwned
	}
	if u.HasFavorite(genID) {
		return common.ErrAlreadyFavorited
	}
	u.FavoriteGenerations = append(u.FavoriteGenerations, genID)
	return nil
}

func (m *memStore) RemoveFavorite(_ context.Context, userID, genID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || !u.HasFavorite(genID) {
		return common.ErrNotFavorited
	}
	u.FavoriteGenerations = slices.DeleteFunc(u.FavoriteGenerations, func(id int64) bool { return id == genID })
	return nil
}

// memGenerations is the generations side of memStore.
type memGenerations struct{ *memStore }

func (g memGenerations) Create(_ context.Context, kind models.GenerationType, content string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextGen++
	g.gens[g.nextGen] = &models.Generation{ID: g.nextGen, Type: kind, Content: content}
	return g.nextGen, nil
}

// ListByIDs returns rows in descending id order to prove callers re-order.
func (g memGenerations) ListByIDs(_ context.Context, ids []int64) ([]*models.Generation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeErr(); err != nil {
		return nil, err
	}
	var out []*models.Generation
	for _, id := range ids {
		if gen, ok := g.gens[id]; ok {
			out = append(out, gen)
		}
	}
	slices.SortFunc(out, func(a, b *models.Generation) int { return int(b.ID - a.ID) })
	return out, nil
}

func (g memGenerations) GetByID(_ context.Context, id int64) (*models.Generation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	gen, ok := g.gens[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return gen, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	store *memStore
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.store }
func (m *fakeRepoManager) Generations(dbx.DBTX) generations.Repository {
	return memGenerations{m.store}
}

type fakeProvider struct {
	out  string
	err  error
	reqs []textgen.Request
}

func (p *fakeProvider) Generate(_ context.Context, req textgen.Request) (string, error) {
	p.reqs = append(p.reqs, req)
	if p.err != nil {
		return "", p.err
	}
	return p.out, nil
}

type fakeTokens struct{ err error }

func (f fakeTokens) Issue(userID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + strconv.FormatInt(userID, 10), nil
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

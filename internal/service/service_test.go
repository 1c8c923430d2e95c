package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/db"
	"github.com/Skotchmaster/moviehub/internal/hash"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
	"github.com/Skotchmaster/moviehub/internal/tmdb"
	"github.com/Skotchmaster/moviehub/internal/tokens"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []mykafka.Event
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, e mykafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeCatalog map[int][]tmdb.CatalogMovie

func (f fakeCatalog) FetchPopular(_ context.Context, page int) []tmdb.CatalogMovie {
	return f[page]
}

type fakeIndex struct {
	indexed []int64
	deleted []int64
	hits    []models.Movie
	err     error
}

func (f *fakeIndex) IndexMovies(_ context.Context, movies []models.Movie) error {
	for _, m := range movies {
		f.indexed = append(f.indexed, m.ID)
	}
	return nil
}

func (f *fakeIndex) DeleteMovie(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int, int) (int64, []models.Movie, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.hits)), f.hits, nil
}

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return repo.New(gdb)
}

func newTokens(t *testing.T) *tokens.Service {
	t.Helper()
	ts, err := tokens.NewService([]byte("test-secret"), "HS256", time.Hour)
	require.NoError(t, err)
	return ts
}

func TestAuthService_RegisterLoginLogout(t *testing.T) {
	r := newRepo(t)
	ts := newTokens(t)
	pub := &recordingPublisher{}
	svc := &AuthService{Repo: r, Tokens: ts, Events: pub}
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.True(t, hash.CheckPassword(u.PasswordHash, "pw"))

	_, err = svc.Register(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.Login(ctx, "ghost@x.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	res, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	claims, err := ts.Validate(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, 0, claims.Version)

	require.NoError(t, svc.Logout(ctx, u))
	stored, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TokenVersion)

	assert.Equal(t, []string{"user_registered"}, pub.types())
}

func TestAuthService_RegisterSurvivesPublisherFailure(t *testing.T) {
	svc := &AuthService{Repo: newRepo(t), Tokens: newTokens(t), Events: &recordingPublisher{err: errors.New("broker down")}}
	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	assert.NoError(t, err)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	r := newRepo(t)
	svc := &AuthService{Repo: r, Tokens: newTokens(t)}
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root@x.com", "pw"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@x.com", "pw"))
	admin, err := r.FindUserByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	u, err := svc.Register(ctx, "b@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, svc.EnsureAdmin(ctx, "b@x.com", "ignored"))
	promoted, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	assert.True(t, hash.CheckPassword(promoted.PasswordHash, "pw"))
}

func TestUserService_ChangePasswordAndRole(t *testing.T) {
	r := newRepo(t)
	auth := &AuthService{Repo: r, Tokens: newTokens(t)}
	svc := &UserService{Repo: r}
	ctx := context.Background()

	u, err := auth.Register(ctx, "a@x.com", "old")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, u, "wrong", "new"), apperr.ErrUnauthorized)
	require.NoError(t, svc.ChangePassword(ctx, u, "old", "new"))

	_, err = auth.Login(ctx, "a@x.com", "old")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = auth.Login(ctx, "a@x.com", "new")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateRole(ctx, u.ID, "SUPERUSER"), apperr.ErrValidation)
	assert.ErrorIs(t, svc.UpdateRole(ctx, 999, "ADMIN"), apperr.ErrNotFound)
	require.NoError(t, svc.UpdateRole(ctx, u.ID, "role_admin"))

	stored, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.Equal(t, 2, stored.TokenVersion)
}

func TestMovieService_Sync(t *testing.T) {
	r := newRepo(t)
	idx := &fakeIndex{}
	pub := &recordingPublisher{}
	svc := &MovieService{
		Repo: r,
		Catalog: fakeCatalog{
			1: {{ID: 1, Title: "One", VoteAverage: 7.5}, {ID: 2, Title: "Two"}},
			2: {{ID: 2, Title: "Two again"}, {ID: 3, Title: "Three"}},
		},
		Index:  idx,
		Events: pub,
	}
	ctx := context.Background()
	require.NoError(t, r.CreateMovie(ctx, &models.Movie{ID: 3, Title: "Local three"}))

	added, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.ElementsMatch(t, []int64{1, 2}, idx.indexed)

	m, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.5, m.Rating)
	local, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Local three", local.Title)

	added, err = svc.Sync(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, []string{"movies_synced", "movies_synced"}, pub.types())
}

func TestMovieService_SyncEmptyCatalog(t *testing.T) {
	svc := &MovieService{Repo: newRepo(t), Catalog: fakeCatalog{}}
	added, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestMovieService_CreateUpdateDelete(t *testing.T) {
	r := newRepo(t)
	idx := &fakeIndex{}
	svc := &MovieService{Repo: r, Index: idx, Now: func() time.Time { return time.Unix(1700000000, 0) }}
	ctx := context.Background()

	m, err := svc.Create(ctx, transport.CreateMovieRequest{Title: "Heat"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), m.ID)

	_, err = svc.Create(ctx, transport.CreateMovieRequest{Title: "Heat 2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, svc.UpdateTitle(ctx, m.ID, "Heat (1995)"))
	require.NoError(t, svc.UpdateTitle(ctx, 42, "nothing"))
	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat (1995)", got.Title)

	require.NoError(t, svc.Delete(ctx, m.ID))
	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []int64{m.ID}, idx.deleted)
	assert.Equal(t, []int64{m.ID, m.ID}, idx.indexed)

	_, err = svc.Get(ctx, m.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMovieService_SearchFallsBackToDatabase(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	require.NoError(t, r.CreateMovie(ctx, &models.Movie{ID: 1, Title: "Alien"}))
	require.NoError(t, r.CreateMovie(ctx, &models.Movie{ID: 2, Title: "Heat"}))

	plain := &MovieService{Repo: r}
	total, movies, err := plain.Search(ctx, "ali", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Alien", movies[0].Title)

	indexed := &MovieService{Repo: r, Index: &fakeIndex{hits: []models.Movie{{ID: 9, Title: "From index"}}}}
	_, movies, err = indexed.Search(ctx, "anything", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "From index", movies[0].Title)

	broken := &MovieService{Repo: r, Index: &fakeIndex{err: errors.New("cluster down")}}
	total, _, err = broken.Search(ctx, "heat", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestReviewService_Ownership(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	auth := &AuthService{Repo: r, Tokens: newTokens(t)}
	alice, err := auth.Register(ctx, "alice@x.com", "pw")
	require.NoError(t, err)
	bob, err := auth.Register(ctx, "bob@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, r.CreateMovie(ctx, &models.Movie{ID: 1, Title: "One"}))

	svc := &ReviewService{Repo: r}

	_, err = svc.Create(ctx, alice, 404, "x", 5)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	rv, err := svc.Create(ctx, alice, 1, "great", 9)
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, rv.ID, "hijacked")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = svc.Update(ctx, alice, 999, "missing")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, bob, rv.ID))
	still, err := svc.Get(ctx, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, "great", still.Content)

	updated, err := svc.Update(ctx, alice, rv.ID, "even better")
	require.NoError(t, err)
	assert.Equal(t, "even better", updated.Content)

	require.NoError(t, svc.Delete(ctx, alice, rv.ID))
	require.NoError(t, svc.Delete(ctx, alice, rv.ID))
	_, err = svc.Get(ctx, rv.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListService_Ownership(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	auth := &AuthService{Repo: r, Tokens: newTokens(t)}
	alice, err := auth.Register(ctx, "alice@x.com", "pw")
	require.NoError(t, err)
	bob, err := auth.Register(ctx, "bob@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, r.CreateMovie(ctx, &models.Movie{ID: 1, Title: "One"}))

	svc := &ListService{Repo: r}
	l, err := svc.Create(ctx, alice, "Favourites", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddMovie(ctx, bob, l.ID, 1), apperr.ErrNotFound)
	assert.ErrorIs(t, svc.AddMovie(ctx, alice, l.ID, 404), apperr.ErrNotFound)
	require.NoError(t, svc.AddMovie(ctx, alice, l.ID, 1))
	require.NoError(t, svc.AddMovie(ctx, alice, l.ID, 1))

	require.NoError(t, svc.RemoveMovie(ctx, bob, l.ID, 1))
	require.NoError(t, svc.Update(ctx, bob, l.ID, "Bob's now", nil))
	require.NoError(t, svc.Delete(ctx, bob, l.ID))

	got, err := svc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Favourites", got.Title)
	assert.Len(t, got.Movies, 1)

	mine, err := svc.Mine(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, mine)

	require.NoError(t, svc.Delete(ctx, alice, l.ID))
	_, err = svc.Get(ctx, l.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

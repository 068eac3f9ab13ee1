package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

type fakeFetcher struct {
	user  *models.UserProfile
	err   error
	calls int

	// waitForDeadline makes Me block until ctx is done, like a slow backend.
	waitForDeadline bool
}

func (f *fakeFetcher) Me(ctx context.Context) (*models.UserProfile, error) {
	f.calls++
	if f.waitForDeadline {
		<-ctx.Done()
		return nil, &gateway.Error{Kind: gateway.KindTimeout, Message: "Request timeout", Err: ctx.Err()}
	}
	return f.user, f.err
}

func farmer() *models.UserProfile {
	size := 1.5
	return &models.UserProfile{
		ID:                   12,
		FullName:             "Jean Uwimana",
		PhoneNumber:          "+250788123456",
		Role:                 models.RoleFarmer,
		District:             "Musanze",
		Sector:               "Kinigi",
		FarmSize:             &size,
		PreferredContact:     models.ContactSMS,
		ReceiveNotifications: true,
		IsActive:             true,
		CreatedAt:            "2025-01-10T08:00:00",
	}
}

func TestStore_PersistThenCurrentUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)

	want := farmer()
	require.NoError(t, s.Persist(ctx, "tok-1", want))

	got := s.CurrentUser(ctx)
	require.NotNil(t, got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "tok-1", s.CurrentToken(ctx))
	assert.True(t, s.IsAuthenticated(ctx))

	sess := s.Load(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, "tok-1", sess.Token)
}

func TestStore_PersistOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)

	require.NoError(t, s.Persist(ctx, "old", farmer()))

	admin := &models.UserProfile{ID: 1, FullName: "Admin", Role: models.RoleAdmin}
	require.NoError(t, s.Persist(ctx, "new", admin))

	assert.Equal(t, "new", s.CurrentToken(ctx))
	assert.True(t, s.CurrentUser(ctx).IsAdmin())
}

func TestStore_PersistRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)

	assert.ErrorIs(t, s.Persist(ctx, "", farmer()), ErrIncompleteSession)
	assert.ErrorIs(t, s.Persist(ctx, "tok", nil), ErrIncompleteSession)

	assert.Empty(t, s.CurrentToken(ctx))
	assert.Nil(t, s.CurrentUser(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)

	require.NoError(t, s.Persist(ctx, "tok-1", farmer()))
	require.NoError(t, s.Clear(ctx))

	assert.Nil(t, s.CurrentUser(ctx))
	assert.Empty(t, s.CurrentToken(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Nil(t, s.Load(ctx))

	// clearing twice is fine
	require.NoError(t, s.Clear(ctx))
}

func TestStore_Token_ImplementsTokenSource(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)

	var src gateway.TokenSource = s

	tok, err := src.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.Persist(ctx, "tok-1", farmer()))
	tok, err = src.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestStore_CorruptedProfileIsAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil, nil)

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?), (?, ?)`,
		common.AuthTokenKey, []byte("tok-1"),
		common.UserProfileKey, []byte("{not json"))
	require.NoError(t, err)

	assert.Nil(t, s.CurrentUser(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)

	assert.ErrorIs(t, s.UpdateUser(ctx, farmer()), ErrIncompleteSession)

	require.NoError(t, s.Persist(ctx, "tok-1", farmer()))

	updated := farmer()
	updated.PreferredContact = models.ContactEmail
	updated.Email = "jean@example.rw"
	require.NoError(t, s.UpdateUser(ctx, updated))

	assert.Equal(t, "tok-1", s.CurrentToken(ctx))
	assert.Equal(t, models.ContactEmail, s.CurrentUser(ctx).PreferredContact)
}

func TestStore_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	fresh := farmer()
	fresh.District = "Rubavu"
	f := &fakeFetcher{user: fresh}
	s := NewStore(setupDB(t), f, nil)

	require.NoError(t, s.Persist(ctx, "tok-1", farmer()))

	got, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rubavu", got.District)
	assert.Equal(t, "Rubavu", s.CurrentUser(ctx).District)
	assert.Equal(t, "tok-1", s.CurrentToken(ctx))
	assert.Equal(t, 1, f.calls)
}

func TestStore_Refresh_NoTokenSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{user: farmer()}
	s := NewStore(setupDB(t), f, nil)

	got, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, f.calls)
}

func TestStore_Refresh_FailureSignsOut(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rejected", &gateway.Error{Kind: gateway.KindServer, Status: 401, Message: "Could not validate credentials"}},
		{"timeout", &gateway.Error{Kind: gateway.KindTimeout, Message: "timeout"}},
		{"network", &gateway.Error{Kind: gateway.KindNetwork, Message: "down"}},
		{"decode", &gateway.Error{Kind: gateway.KindDecode, Message: "bad"}},
		{"other", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewStore(setupDB(t), &fakeFetcher{err: tt.err}, nil)
			require.NoError(t, s.Persist(ctx, "tok-1", farmer()))

			got, err := s.Refresh(ctx)
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.False(t, s.IsAuthenticated(ctx))
			assert.Empty(t, s.CurrentToken(ctx))
		})
	}
}

func TestStore_Refresh_CallerDeadlineSignsOut(t *testing.T) {
	s := NewStore(setupDB(t), &fakeFetcher{waitForDeadline: true}, nil)
	require.NoError(t, s.Persist(context.Background(), "tok-1", farmer()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	bg := context.Background()
	assert.False(t, s.IsAuthenticated(bg))
	assert.Empty(t, s.CurrentToken(bg))
}

func TestStore_Refresh_CanceledBeforeStartKeepsSession(t *testing.T) {
	f := &fakeFetcher{err: &gateway.Error{Kind: gateway.KindCanceled, Message: "Request canceled", Err: context.Canceled}}
	s := NewStore(setupDB(t), f, nil)
	require.NoError(t, s.Persist(context.Background(), "tok-1", farmer()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, f.calls)
	assert.True(t, s.IsAuthenticated(context.Background()))
}

func TestStore_Refresh_NilProfileSignsOut(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), &fakeFetcher{}, nil)
	require.NoError(t, s.Persist(ctx, "tok-1", farmer()))

	got, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_Refresh_CancellationKeepsSession(t *testing.T) {
	for _, cause := range []error{
		&gateway.Error{Kind: gateway.KindCanceled, Message: "Request canceled"},
		fmt.Errorf("me: %w", context.Canceled),
	} {
		ctx := context.Background()
		s := NewStore(setupDB(t), &fakeFetcher{err: cause}, nil)
		require.NoError(t, s.Persist(ctx, "tok-1", farmer()))

		got, err := s.Refresh(ctx)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, s.IsAuthenticated(ctx))
	}
}

func TestStore_Refresh_WithoutFetcher(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil, nil)
	require.NoError(t, s.Persist(ctx, "tok-1", farmer()))

	_, err := s.Refresh(ctx)
	require.Error(t, err)

	s.SetFetcher(&fakeFetcher{user: farmer()})
	got, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "12",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "12"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)

	_, ok = TokenExpiry("")
	assert.False(t, ok)
	_, ok = TokenExpiry("opaque-token")
	assert.False(t, ok)
}

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/client/repositories/metadata"
	"github.com/sosens/sosens/internal/common"
	"github.com/sosens/sosens/internal/dbx"
	"github.com/sosens/sosens/internal/logging"
)

// ErrIncompleteSession is returned by Persist when the token or the profile
// is missing.
var ErrIncompleteSession = errors.New("session requires both token and profile")

// ProfileFetcher loads the profile of the user owning the current token.
type ProfileFetcher interface {
	Me(ctx context.Context) (*models.UserProfile, error)
}

// Session is a snapshot of the cached credentials.
type Session struct {
	Token string
	User  *models.UserProfile
}

type Store struct {
	db      *sql.DB
	fetcher ProfileFetcher
	logger  logging.Logger
}

// NewStore returns a Store persisting into db. fetcher is only used by
// Refresh and may be set later with SetFetcher.
func NewStore(db *sql.DB, fetcher ProfileFetcher, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{db: db, fetcher: fetcher, logger: logger.With("module", "session")}
}

// SetFetcher sets the profile source. The gateway needs the store as its
// token source before the API client exists, hence the late binding.
func (s *Store) SetFetcher(f ProfileFetcher) {
	s.fetcher = f
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Persist replaces the cached session with token and user.
func (s *Store) Persist(ctx context.Context, token string, user *models.UserProfile) error {
	if token == "" || user == nil {
		return ErrIncompleteSession
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AuthTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserProfileKey, raw)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.logger.Debug(ctx, "session persisted", "user_id", user.ID, "role", string(user.Role))
	return nil
}

// Clear removes the cached session. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.AuthTokenKey, common.UserProfileKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Debug(ctx, "session cleared")
	return nil
}

// Token implements gateway.TokenSource.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.repo().Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// CurrentToken returns the cached token or "" when there is none.
func (s *Store) CurrentToken(ctx context.Context) string {
	t, err := s.Token(ctx)
	if err != nil {
		s.logger.Warn(ctx, "reading cached token failed", "error", err)
		return ""
	}
	return t
}

// CurrentUser returns the cached profile, or nil when it is absent or
// cannot be read back.
func (s *Store) CurrentUser(ctx context.Context) *models.UserProfile {
	raw, err := s.repo().Get(ctx, common.UserProfileKey)
	if err != nil {
		s.logger.Warn(ctx, "reading cached profile failed", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var u models.UserProfile
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn(ctx, "cached profile is corrupted", "error", err)
		return nil
	}
	return &u
}

// Load returns the cached session, or nil unless both halves are present.
func (s *Store) Load(ctx context.Context) *Session {
	token := s.CurrentToken(ctx)
	if token == "" {
		return nil
	}
	user := s.CurrentUser(ctx)
	if user == nil {
		return nil
	}
	return &Session{Token: token, User: user}
}

func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Load(ctx) != nil
}

// UpdateUser overwrites the cached profile and keeps the token. It fails
// with ErrIncompleteSession when no token is cached.
func (s *Store) UpdateUser(ctx context.Context, user *models.UserProfile) error {
	token := s.CurrentToken(ctx)
	if token == "" {
		return ErrIncompleteSession
	}
	return s.Persist(ctx, token, user)
}

// Refresh asks the backend who owns the cached token and stores the answer.
// Any failure other than caller cancellation ends the session: the store is
// cleared and Refresh reports no user. A canceled call leaves the session
// as it was and returns the error.
//
// Local reads and writes run detached from ctx's deadline, so a call that
// times out still signs the user out.
func (s *Store) Refresh(ctx context.Context) (*models.UserProfile, error) {
	local := context.WithoutCancel(ctx)

	token := s.CurrentToken(local)
	if token == "" {
		return nil, s.Clear(local)
	}
	if s.fetcher == nil {
		return nil, errors.New("session refresh: no profile fetcher configured")
	}

	user, err := s.fetcher.Me(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrCanceled) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("session refresh: %w", err)
		}
		s.logger.Warn(ctx, "session refresh failed, signing out", "error", err)
		return nil, s.Clear(local)
	}
	if user == nil {
		s.logger.Warn(ctx, "session refresh returned no profile, signing out")
		return nil, s.Clear(local)
	}

	if err := s.Persist(local, token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenExpiry reads the exp claim of a JWT bearer token. The signature is
// not checked; the result is informational only.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

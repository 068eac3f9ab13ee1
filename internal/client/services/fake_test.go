package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sosens/sosens/internal/client/client"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/client/session"
	"github.com/sosens/sosens/internal/logging"

	_ "modernc.org/sqlite"
)

// fakeClient overrides the endpoints a test needs. Calling anything else
// panics on the nil embedded interface.
type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	registerFn        func(models.RegisterRequest) (*models.AuthResult, error)
	loginFn           func(string, string) (*models.AuthResult, error)
	meFn              func() (*models.UserProfile, error)
	forgotFn          func(string) (*models.ForgotPasswordResult, error)
	resetFn           func(models.ResetPasswordRequest) (*models.ActionResult, error)
	predictFn         func(models.PredictionRequest) (*models.PredictionResponse, error)
	recommendationsFn func(context.Context) (*models.RecommendationList, error)
	readingsFn        func(context.Context) (*models.SoilReadingList, error)
	submitFn          func(models.SoilReadingInput) (*models.ActionResult, error)
	weatherFn         func() (*models.Weather, error)
	prefsFn           func(models.PreferencesUpdate) (*models.PreferencesResult, error)
	analyticsFn       func(context.Context) (*models.Analytics, error)
	usersFn           func(context.Context, models.UserFilter) (*models.UserList, error)
	broadcastFn       func(models.BroadcastRequest) (*models.ActionResult, error)
	sendWeatherFn     func() (*models.ActionResult, error)
	bulkFn            func(models.BulkPredictionRequest) (*models.ActionResult, error)
	logsFn            func(int, int) (*models.NotificationLogList, error)
	healthFn          func() (*models.Health, error)
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	f.record("register")
	return f.registerFn(req)
}

func (f *fakeClient) Login(_ context.Context, u, p string) (*models.AuthResult, error) {
	f.record("login")
	return f.loginFn(u, p)
}

func (f *fakeClient) Me(context.Context) (*models.UserProfile, error) {
	f.record("me")
	return f.meFn()
}

func (f *fakeClient) ForgotPassword(_ context.Context, u string) (*models.ForgotPasswordResult, error) {
	f.record("forgot")
	return f.forgotFn(u)
}

func (f *fakeClient) ResetPassword(_ context.Context, req models.ResetPasswordRequest) (*models.ActionResult, error) {
	f.record("reset")
	return f.resetFn(req)
}

func (f *fakeClient) Predict(_ context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	f.record("predict")
	return f.predictFn(req)
}

func (f *fakeClient) Recommendations(ctx context.Context) (*models.RecommendationList, error) {
	f.record("recommendations")
	return f.recommendationsFn(ctx)
}

func (f *fakeClient) SoilReadings(ctx context.Context) (*models.SoilReadingList, error) {
	f.record("readings")
	return f.readingsFn(ctx)
}

func (f *fakeClient) SubmitSoilReading(_ context.Context, in models.SoilReadingInput) (*models.ActionResult, error) {
	f.record("submit")
	return f.submitFn(in)
}

func (f *fakeClient) Weather(context.Context) (*models.Weather, error) {
	f.record("weather")
	return f.weatherFn()
}

func (f *fakeClient) UpdatePreferences(_ context.Context, upd models.PreferencesUpdate) (*models.PreferencesResult, error) {
	f.record("prefs")
	return f.prefsFn(upd)
}

func (f *fakeClient) Analytics(ctx context.Context) (*models.Analytics, error) {
	f.record("analytics")
	return f.analyticsFn(ctx)
}

func (f *fakeClient) Users(ctx context.Context, filter models.UserFilter) (*models.UserList, error) {
	f.record("users")
	return f.usersFn(ctx, filter)
}

func (f *fakeClient) SendWeatherNotifications(context.Context) (*models.ActionResult, error) {
	f.record("send-weather")
	return f.sendWeatherFn()
}

func (f *fakeClient) Broadcast(_ context.Context, req models.BroadcastRequest) (*models.ActionResult, error) {
	f.record("broadcast")
	return f.broadcastFn(req)
}

func (f *fakeClient) SendBulkPredictions(_ context.Context, req models.BulkPredictionRequest) (*models.ActionResult, error) {
	f.record("send-predictions")
	return f.bulkFn(req)
}

func (f *fakeClient) NotificationLogs(_ context.Context, skip, limit int) (*models.NotificationLogList, error) {
	f.record("logs")
	return f.logsFn(skip, limit)
}

func (f *fakeClient) Health(context.Context) (*models.Health, error) {
	f.record("health")
	return f.healthFn()
}

func newSessionStore(t *testing.T, fetcher session.ProfileFetcher) *session.Store {
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
	return session.NewStore(db, fetcher, logging.Discard())
}

package client

import (
	"context"

	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/models"
)

// Doer performs one backend call. *gateway.Gateway satisfies it.
type Doer interface {
	Do(ctx context.Context, r gateway.Request, out any) error
}

type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	ForgotPassword(ctx context.Context, username string) (*models.ForgotPasswordResult, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.ActionResult, error)

	Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error)
	Recommendations(ctx context.Context) (*models.RecommendationList, error)
	SoilReadings(ctx context.Context) (*models.SoilReadingList, error)
	SubmitSoilReading(ctx context.Context, in models.SoilReadingInput) (*models.ActionResult, error)
	Weather(ctx context.Context) (*models.Weather, error)
	UpdatePreferences(ctx context.Context, upd models.PreferencesUpdate) (*models.PreferencesResult, error)

	Analytics(ctx context.Context) (*models.Analytics, error)
	Users(ctx context.Context, f models.UserFilter) (*models.UserList, error)
	SendWeatherNotifications(ctx context.Context) (*models.ActionResult, error)
	Broadcast(ctx context.Context, req models.BroadcastRequest) (*models.ActionResult, error)
	SendBulkPredictions(ctx context.Context, req models.BulkPredictionRequest) (*models.ActionResult, error)
	NotificationLogs(ctx context.Context, skip, limit int) (*models.NotificationLogList, error)

	Health(ctx context.Context) (*models.Health, error)
}

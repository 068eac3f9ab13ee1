package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/models"
)

const (
	DefaultUsersLimit = 50
	DefaultLogsLimit  = 100
)

// HTTPClient is the Client backed by the SOSENS REST API.
type HTTPClient struct {
	do Doer
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(d Doer) *HTTPClient {
	return &HTTPClient{do: d}
}

func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do.Do(ctx, gateway.Request{Method: http.MethodGet, Path: path, Query: q}, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	return c.do.Do(ctx, gateway.Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// ---- auth ----

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.post(ctx, "auth/register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login exchanges a phone number or email and a password for a token. The
// backend expects an OAuth2 password form, not JSON.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	err := c.do.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "auth/login",
		Form:   url.Values{"username": {username}, "password": {password}},
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := c.get(ctx, "auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, username string) (*models.ForgotPasswordResult, error) {
	var res models.ForgotPasswordResult
	if err := c.post(ctx, "auth/forgot-password", map[string]string{"username": username}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.ActionResult, error) {
	var res models.ActionResult
	if err := c.post(ctx, "auth/reset-password", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ---- farmer ----

func (c *HTTPClient) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	var res models.PredictionResponse
	if err := c.post(ctx, "predict", req, &res); err != nil {
		return nil, err
	}
	if res.Alternatives == nil {
		res.Alternatives = []models.CropScore{}
	}
	return &res, nil
}

func (c *HTTPClient) Recommendations(ctx context.Context) (*models.RecommendationList, error) {
	var p recommendationListPayload
	if err := c.get(ctx, "recommendations", nil, &p); err != nil {
		return nil, err
	}
	return p.toModel(), nil
}

func (c *HTTPClient) SoilReadings(ctx context.Context) (*models.SoilReadingList, error) {
	var p soilReadingListPayload
	if err := c.get(ctx, "soil-readings", nil, &p); err != nil {
		return nil, err
	}
	return p.toModel(), nil
}

func (c *HTTPClient) SubmitSoilReading(ctx context.Context, in models.SoilReadingInput) (*models.ActionResult, error) {
	var res models.ActionResult
	if err := c.post(ctx, "soil-readings", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Weather(ctx context.Context) (*models.Weather, error) {
	var w models.Weather
	if err := c.get(ctx, "weather", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, upd models.PreferencesUpdate) (*models.PreferencesResult, error) {
	var res models.PreferencesResult
	err := c.do.Do(ctx, gateway.Request{Method: http.MethodPut, Path: "preferences", Body: upd}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ---- admin ----

func (c *HTTPClient) Analytics(ctx context.Context) (*models.Analytics, error) {
	var p analyticsPayload
	if err := c.get(ctx, "admin/analytics", nil, &p); err != nil {
		return nil, err
	}
	return p.toModel(), nil
}

// Users lists accounts. A zero Limit means DefaultUsersLimit; empty Role
// and District are left out of the query.
func (c *HTTPClient) Users(ctx context.Context, f models.UserFilter) (*models.UserList, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultUsersLimit
	}

	q := url.Values{}
	q.Set("skip", strconv.Itoa(max(f.Skip, 0)))
	q.Set("limit", strconv.Itoa(limit))
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.District != "" {
		q.Set("district", f.District)
	}

	var p userListPayload
	if err := c.get(ctx, "admin/users", q, &p); err != nil {
		return nil, err
	}
	return p.toModel(), nil
}

func (c *HTTPClient) SendWeatherNotifications(ctx context.Context) (*models.ActionResult, error) {
	var res models.ActionResult
	if err := c.post(ctx, "admin/send-weather", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Broadcast(ctx context.Context, req models.BroadcastRequest) (*models.ActionResult, error) {
	var res models.ActionResult
	if err := c.post(ctx, "admin/broadcast", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SendBulkPredictions(ctx context.Context, req models.BulkPredictionRequest) (*models.ActionResult, error) {
	var res models.ActionResult
	if err := c.post(ctx, "admin/send-predictions", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// NotificationLogs pages through delivery logs. A non-positive limit means
// DefaultLogsLimit.
func (c *HTTPClient) NotificationLogs(ctx context.Context, skip, limit int) (*models.NotificationLogList, error) {
	if limit <= 0 {
		limit = DefaultLogsLimit
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(max(skip, 0)))
	q.Set("limit", strconv.Itoa(limit))

	var p notificationLogListPayload
	if err := c.get(ctx, "admin/notification-logs", q, &p); err != nil {
		return nil, err
	}
	return p.toModel(), nil
}

// ---- system ----

func (c *HTTPClient) Health(ctx context.Context) (*models.Health, error) {
	var h models.Health
	if err := c.get(ctx, "health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

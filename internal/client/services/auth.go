// Package services composes the typed API client and the session store into
// the operations the terminal UI offers. This file holds the account
// lifecycle: register, login, logout, session refresh, password recovery
// and notification preferences.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sosens/sosens/internal/client/client"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/logging"
)

// SessionStore is the part of session.Store the services rely on.
type SessionStore interface {
	Persist(ctx context.Context, token string, user *models.UserProfile) error
	UpdateUser(ctx context.Context, user *models.UserProfile) error
	Clear(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.UserProfile
	IsAuthenticated(ctx context.Context) bool
	Refresh(ctx context.Context) (*models.UserProfile, error)
}

// AuthService defines account operations for the CLI.
//
// Register and Login cache the returned session before reporting success;
// Logout and a failed Refresh drop it. All methods honor ctx.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error)
	Login(ctx context.Context, username, password string) (*models.UserProfile, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*models.UserProfile, error)
	CurrentUser(ctx context.Context) *models.UserProfile
	IsAuthenticated(ctx context.Context) bool
	ForgotPassword(ctx context.Context, username string) (*models.ForgotPasswordResult, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.ActionResult, error)
	UpdatePreferences(ctx context.Context, upd models.PreferencesUpdate) (*models.UserProfile, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session SessionStore
	logger  logging.Logger
}

func NewAuthService(c client.Client, s SessionStore, logger logging.Logger) AuthService {
	return &authService{client: c, session: s, logger: logger.With("service", "auth")}
}

// Register creates a farmer account and signs it in. Admin accounts are
// provisioned on the backend, so any requested role is replaced. Unset
// contact channel and notification flag default to sms and on.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Role = models.RoleFarmer
	if req.PreferredContact == "" {
		req.PreferredContact = models.ContactSMS
	}
	if req.ReceiveNotifications == nil {
		on := true
		req.ReceiveNotifications = &on
	}

	if err := check(req); err != nil {
		return nil, err
	}

	res, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.signIn(ctx, res)
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.signIn(ctx, res)
}

func (a *authService) signIn(ctx context.Context, res *models.AuthResult) (*models.UserProfile, error) {
	user := res.User
	if err := a.session.Persist(ctx, res.AccessToken, &user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info(ctx, "signed in", "user_id", user.ID, "role", string(user.Role))
	return &user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.logger.Info(ctx, "signed out")
	return nil
}

func (a *authService) Refresh(ctx context.Context) (*models.UserProfile, error) {
	return a.session.Refresh(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) *models.UserProfile {
	return a.session.CurrentUser(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

func (a *authService) ForgotPassword(ctx context.Context, username string) (*models.ForgotPasswordResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: phone number or email is required", ErrInvalidInput)
	}
	res, err := a.client.ForgotPassword(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}
	return res, nil
}

func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.ActionResult, error) {
	req.Token = strings.TrimSpace(req.Token)
	if err := check(req); err != nil {
		return nil, err
	}
	res, err := a.client.ResetPassword(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}
	return res, nil
}

// UpdatePreferences saves the changes and replaces the cached profile with
// the one the backend returns. When the reply carries no profile it is
// fetched again; if that fails too the cached profile is kept.
func (a *authService) UpdatePreferences(ctx context.Context, upd models.PreferencesUpdate) (*models.UserProfile, error) {
	if err := check(upd); err != nil {
		return nil, err
	}

	res, err := a.client.UpdatePreferences(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	user := res.User
	if user.ID == 0 {
		// reply without a profile: reload it rather than cache an empty one
		me, err := a.client.Me(ctx)
		if err != nil || me == nil {
			a.logger.Warn(ctx, "preferences saved but profile reload failed", "error", err)
			return a.session.CurrentUser(ctx), nil
		}
		user = *me
	}

	if err := a.session.UpdateUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &user, nil
}

// Ping reports whether the backend answers its health check.
func (a *authService) Ping(ctx context.Context) error {
	h, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if h.Status != "" && !strings.EqualFold(h.Status, "healthy") && !strings.EqualFold(h.Status, "ok") {
		return fmt.Errorf("backend status %q", h.Status)
	}
	return nil
}


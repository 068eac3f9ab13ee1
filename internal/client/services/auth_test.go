package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/logging"
)

func authResult(role models.Role) *models.AuthResult {
	return &models.AuthResult{
		AccessToken: "tok-1",
		TokenType:   "bearer",
		User: models.UserProfile{
			ID:               4,
			FullName:         "Aline Mukamana",
			PhoneNumber:      "+250788123456",
			Role:             role,
			District:         "Huye",
			PreferredContact: models.ContactSMS,
		},
	}
}

func TestAuthService_Login_PersistsSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginFn: func(u, p string) (*models.AuthResult, error) {
		assert.Equal(t, "+250788123456", u)
		assert.Equal(t, "secret1", p)
		return authResult(models.RoleFarmer), nil
	}}
	store := newSessionStore(t, fc)
	svc := NewAuthService(fc, store, logging.Discard())

	user, err := svc.Login(ctx, " +250788123456 ", "secret1")
	require.NoError(t, err)
	assert.True(t, user.IsFarmer())

	assert.True(t, svc.IsAuthenticated(ctx))
	assert.Equal(t, "tok-1", store.CurrentToken(ctx))
	assert.Equal(t, "Aline Mukamana", svc.CurrentUser(ctx).FullName)
}

func TestAuthService_Login_Rejected(t *testing.T) {
	ctx := context.Background()
	rejected := &gateway.Error{Kind: gateway.KindServer, Status: 401, Message: "Incorrect phone/email or password"}
	fc := &fakeClient{loginFn: func(string, string) (*models.AuthResult, error) { return nil, rejected }}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(ctx, "+250788123456", "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)
	assert.False(t, svc.IsAuthenticated(ctx))
}

func TestAuthService_Login_RequiresCredentials(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(context.Background(), "  ", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, fc.called("login"))
}

func TestAuthService_Register_Defaults(t *testing.T) {
	ctx := context.Background()
	var sent models.RegisterRequest
	fc := &fakeClient{registerFn: func(req models.RegisterRequest) (*models.AuthResult, error) {
		sent = req
		return authResult(models.RoleFarmer), nil
	}}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Register(ctx, models.RegisterRequest{
		FullName:    "Aline Mukamana",
		PhoneNumber: "+250788123456",
		Password:    "secret1",
		District:    "Huye",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleFarmer, sent.Role)
	assert.Equal(t, models.ContactSMS, sent.PreferredContact)
	require.NotNil(t, sent.ReceiveNotifications)
	assert.True(t, *sent.ReceiveNotifications)
	assert.True(t, svc.IsAuthenticated(ctx))
}

func TestAuthService_Register_AlwaysFarmer(t *testing.T) {
	var sent models.RegisterRequest
	fc := &fakeClient{registerFn: func(req models.RegisterRequest) (*models.AuthResult, error) {
		sent = req
		return authResult(models.RoleFarmer), nil
	}}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName:    "Aline Mukamana",
		PhoneNumber: "+250788123456",
		Password:    "secret1",
		District:    "Huye",
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleFarmer, sent.Role)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"short password", models.RegisterRequest{FullName: "A", PhoneNumber: "+250788", Password: "123", District: "Huye"}, "password"},
		{"no contact", models.RegisterRequest{FullName: "A", Password: "secret1", District: "Huye"}, "phone_number"},
		{"bad email", models.RegisterRequest{FullName: "A", Email: "not-an-email", Password: "secret1", District: "Huye"}, "email"},
		{"no district", models.RegisterRequest{FullName: "A", PhoneNumber: "+250788", Password: "secret1"}, "district"},
		{"bad contact", models.RegisterRequest{FullName: "A", PhoneNumber: "+250788", Password: "secret1", District: "Huye", PreferredContact: "pigeon"}, "preferred_contact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)

			var ve validator.ValidationErrors
			assert.True(t, errors.As(err, &ve))
			assert.Equal(t, 0, fc.called("register"))
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginFn: func(string, string) (*models.AuthResult, error) { return authResult(models.RoleAdmin), nil }}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(ctx, "admin@sosens.rw", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assert.False(t, svc.IsAuthenticated(ctx))
	assert.Nil(t, svc.CurrentUser(ctx))
}

func TestAuthService_Refresh_RejectedSignsOut(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		loginFn: func(string, string) (*models.AuthResult, error) { return authResult(models.RoleFarmer), nil },
		meFn: func() (*models.UserProfile, error) {
			return nil, &gateway.Error{Kind: gateway.KindServer, Status: 401, Message: "expired"}
		},
	}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(ctx, "+250788123456", "secret1")
	require.NoError(t, err)

	user, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, svc.IsAuthenticated(ctx))
}

func TestAuthService_ForgotAndReset(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		forgotFn: func(u string) (*models.ForgotPasswordResult, error) {
			return &models.ForgotPasswordResult{Success: true, Message: "sent", DebugToken: "654321"}, nil
		},
		resetFn: func(req models.ResetPasswordRequest) (*models.ActionResult, error) {
			assert.Equal(t, "654321", req.Token)
			return &models.ActionResult{Success: true, Message: "Password reset"}, nil
		},
	}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.ForgotPassword(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	res, err := svc.ForgotPassword(ctx, "+250788123456")
	require.NoError(t, err)
	assert.Equal(t, "654321", res.DebugToken)

	_, err = svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "654321", NewPassword: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, fc.called("reset"))

	out, err := svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: " 654321 ", NewPassword: "newpass1"})
	require.NoError(t, err)
	assert.Equal(t, "Password reset", out.Message)
}

func TestAuthService_UpdatePreferences_ReplacesProfile(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		loginFn: func(string, string) (*models.AuthResult, error) { return authResult(models.RoleFarmer), nil },
		prefsFn: func(upd models.PreferencesUpdate) (*models.PreferencesResult, error) {
			u := authResult(models.RoleFarmer).User
			u.PreferredContact = *upd.PreferredContact
			u.Email = "aline@example.rw"
			return &models.PreferencesResult{Success: true, User: u}, nil
		},
	}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(ctx, "+250788123456", "secret1")
	require.NoError(t, err)

	email := models.ContactEmail
	user, err := svc.UpdatePreferences(ctx, models.PreferencesUpdate{PreferredContact: &email})
	require.NoError(t, err)
	assert.Equal(t, models.ContactEmail, user.PreferredContact)

	cached := svc.CurrentUser(ctx)
	require.NotNil(t, cached)
	assert.Equal(t, models.ContactEmail, cached.PreferredContact)
	assert.Equal(t, "aline@example.rw", cached.Email)
}

func TestAuthService_UpdatePreferences_ReplyWithoutProfile(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		loginFn: func(string, string) (*models.AuthResult, error) { return authResult(models.RoleAdmin), nil },
		prefsFn: func(models.PreferencesUpdate) (*models.PreferencesResult, error) {
			return &models.PreferencesResult{Success: true, Message: "Preferences updated"}, nil
		},
		meFn: func() (*models.UserProfile, error) {
			u := authResult(models.RoleAdmin).User
			u.ReceiveNotifications = true
			return &u, nil
		},
	}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(ctx, "+250788123456", "secret1")
	require.NoError(t, err)

	on := true
	user, err := svc.UpdatePreferences(ctx, models.PreferencesUpdate{ReceiveNotifications: &on})
	require.NoError(t, err)
	assert.True(t, user.ReceiveNotifications)
	assert.Equal(t, 1, fc.called("me"))

	cached := svc.CurrentUser(ctx)
	require.NotNil(t, cached)
	assert.True(t, cached.IsAdmin())
	assert.Equal(t, "Aline Mukamana", cached.FullName)
}

func TestAuthService_UpdatePreferences_ReloadFailsKeepsCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		loginFn: func(string, string) (*models.AuthResult, error) { return authResult(models.RoleAdmin), nil },
		prefsFn: func(models.PreferencesUpdate) (*models.PreferencesResult, error) {
			return &models.PreferencesResult{Success: true}, nil
		},
		meFn: func() (*models.UserProfile, error) {
			return nil, &gateway.Error{Kind: gateway.KindNetwork, Message: "down"}
		},
	}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	_, err := svc.Login(ctx, "+250788123456", "secret1")
	require.NoError(t, err)

	on := true
	user, err := svc.UpdatePreferences(ctx, models.PreferencesUpdate{ReceiveNotifications: &on})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin())
	assert.True(t, svc.CurrentUser(ctx).IsAdmin())
	assert.True(t, svc.IsAuthenticated(ctx))
}

func TestAuthService_UpdatePreferences_InvalidContact(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	bad := models.ContactChannel("pigeon")
	_, err := svc.UpdatePreferences(context.Background(), models.PreferencesUpdate{PreferredContact: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthService_Ping(t *testing.T) {
	status := "healthy"
	var healthErr error
	fc := &fakeClient{healthFn: func() (*models.Health, error) {
		if healthErr != nil {
			return nil, healthErr
		}
		return &models.Health{Status: status}, nil
	}}
	svc := NewAuthService(fc, newSessionStore(t, fc), logging.Discard())

	assert.NoError(t, svc.Ping(context.Background()))

	status = "degraded"
	assert.Error(t, svc.Ping(context.Background()))

	healthErr = &gateway.Error{Kind: gateway.KindNetwork, Message: "down"}
	assert.ErrorIs(t, svc.Ping(context.Background()), gateway.ErrNetwork)
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/client/session"
	"github.com/sosens/sosens/internal/common"
)

// getSimpleText, getPassword and friends are indirections used to
// facilitate testing.
var (
	getSimpleText  = GetSimpleText
	getWithDefault = GetWithDefault
	getPassword    = GetPassword
	getFloat       = GetFloat
	getYesNo       = GetYesNo
)

// readNewPassword asks for a password twice.
func (a *App) readNewPassword(prompt string) ([]byte, error) {
	pw, err := getPassword(a.reader, prompt, a.printer.Out())
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.printer.Out())
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if string(pw) != string(confirm) {
		common.WipeByteArray(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}

// Register prompts for the account details and creates a farmer account.
// The new user is signed in on success.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.FullName, err = getSimpleText(a.reader, "Full name", a.printer.Out()); err != nil {
		return err
	}
	if req.PhoneNumber, err = getSimpleText(a.reader, "Phone number, e.g. +250788123456 (optional if email given)", a.printer.Out()); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email (optional)", a.printer.Out()); err != nil {
		return err
	}
	if req.District, err = getSimpleText(a.reader, "District", a.printer.Out()); err != nil {
		return err
	}
	if req.Sector, err = getSimpleText(a.reader, "Sector (optional)", a.printer.Out()); err != nil {
		return err
	}
	if req.Village, err = getSimpleText(a.reader, "Village (optional)", a.printer.Out()); err != nil {
		return err
	}
	if req.FarmSize, err = getFloat(a.reader, "Farm size in hectares", true, a.printer.Out()); err != nil {
		return err
	}

	contact, err := getWithDefault(a.reader, "Preferred contact (sms/email)", string(models.ContactSMS), a.printer.Out())
	if err != nil {
		return err
	}
	req.PreferredContact = models.ContactChannel(strings.ToLower(contact))

	if req.ReceiveNotifications, err = getYesNo(a.reader, "Receive notifications? [y]", a.printer.Out()); err != nil {
		return err
	}

	password, err := a.readNewPassword("Password (min 6 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	user, err := a.authService.Register(ctx, req)
	if err != nil {
		return err
	}
	a.printer.Success("Account created. Welcome, %s!", user.FullName)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Phone number or email", a.printer.Out())
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.printer.Out())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, username, string(password))
	if err != nil {
		return err
	}
	a.printer.Success("Logged in as %s (%s)", user.FullName, user.Role)
	return nil
}

// Logout drops the cached session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.printer.Success("Logged out")
	return nil
}

// Whoami shows the cached profile without calling the backend.
func (a *App) Whoami(ctx context.Context) error {
	u := a.authService.CurrentUser(ctx)
	if u == nil {
		return errNotLoggedIn
	}
	exp, ok := session.TokenExpiry(a.session.CurrentToken(ctx))
	a.renderProfile(u, exp, ok)
	return nil
}

// Refresh reloads the profile from the backend. A rejected session is
// dropped.
func (a *App) Refresh(ctx context.Context) error {
	u, err := a.authService.Refresh(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.printer.Warning("Your session has ended, please log in again")
		return nil
	}
	a.printer.Success("Profile refreshed")
	exp, ok := session.TokenExpiry(a.session.CurrentToken(ctx))
	a.renderProfile(u, exp, ok)
	return nil
}

// ForgotPassword requests a reset code for an account.
func (a *App) ForgotPassword(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Phone number or email of your account", a.printer.Out())
	if err != nil {
		return err
	}

	res, err := a.authService.ForgotPassword(ctx, username)
	if err != nil {
		return err
	}

	msg := res.Message
	if msg == "" {
		msg = "If the account exists, a reset code has been sent"
	}
	a.printer.Success("%s", msg)
	if res.DebugToken != "" {
		a.printer.Info("Reset code (development backend): %s", a.printer.Bold(res.DebugToken))
	}
	a.printer.Info("Run 'reset' with the code to choose a new password")
	return nil
}

// ResetPassword sets a new password using a reset code.
func (a *App) ResetPassword(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Reset code", a.printer.Out())
	if err != nil {
		return err
	}

	password, err := a.readNewPassword("New password (min 6 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.authService.ResetPassword(ctx, models.ResetPasswordRequest{Token: code, NewPassword: string(password)})
	if err != nil {
		return err
	}
	a.renderAction(res, "Password changed, you can now log in")
	return nil
}

// Preferences edits notification and farm settings. Empty answers keep the
// current value.
func (a *App) Preferences(ctx context.Context) error {
	current := a.authService.CurrentUser(ctx)
	if current == nil {
		return errNotLoggedIn
	}
	a.printer.Info("Press Enter to keep the current value")

	var upd models.PreferencesUpdate
	changed := false

	notify, err := getYesNo(a.reader, fmt.Sprintf("Receive notifications? [%s]", yesNo(current.ReceiveNotifications)), a.printer.Out())
	if err != nil {
		return err
	}
	if notify != nil {
		upd.ReceiveNotifications = notify
		changed = true
	}

	contact, err := getSimpleText(a.reader, fmt.Sprintf("Preferred contact (sms/email) [%s]", current.PreferredContact), a.printer.Out())
	if err != nil {
		return err
	}
	if contact != "" {
		c := models.ContactChannel(strings.ToLower(contact))
		upd.PreferredContact = &c
		changed = true
	}

	size, err := getFloat(a.reader, fmt.Sprintf("Farm size in hectares [%s]", optNum(current.FarmSize)), true, a.printer.Out())
	if err != nil {
		return err
	}
	if size != nil {
		upd.FarmSize = size
		changed = true
	}

	for _, f := range []struct {
		label string
		cur   string
		dst   **string
	}{
		{"District", current.District, &upd.District},
		{"Sector", current.Sector, &upd.Sector},
		{"Village", current.Village, &upd.Village},
	} {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, f.cur), a.printer.Out())
		if err != nil {
			return err
		}
		if v != "" && v != f.cur {
			*f.dst = &v
			changed = true
		}
	}

	if !changed {
		a.printer.Info("Nothing to update")
		return nil
	}

	u, err := a.authService.UpdatePreferences(ctx, upd)
	if err != nil {
		return err
	}
	a.printer.Success("Preferences saved")
	exp, ok := session.TokenExpiry(a.session.CurrentToken(ctx))
	a.renderProfile(u, exp, ok)
	return nil
}

// Health checks whether the backend is up. It runs in the health scope,
// so it replaces a background check still in flight.
func (a *App) Health(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		if ctx.Err() == nil {
			a.setMode(ctx, ModeOffline)
		}
		return err
	}
	a.setMode(ctx, ModeOnline)
	a.printer.Success("Backend is up")
	return nil
}

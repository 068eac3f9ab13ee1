package cli

import (
	"context"
	"errors"

	"github.com/sosens/sosens/internal/client/gateway"
	"github.com/sosens/sosens/internal/client/services"
)

var (
	errNotLoggedIn      = errors.New("you are not logged in, use 'login' or 'register'")
	errAdminOnly        = errors.New("this command is available to administrators only")
	errPasswordMismatch = errors.New("passwords do not match")
)

// describe turns a command failure into a one-line message and an optional
// hint for the user.
func describe(err error) (msg, hint string) {
	if errors.Is(err, services.ErrInvalidInput) {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return ve.Error(), ""
		}
		return err.Error(), ""
	}

	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		switch {
		case errors.Is(gerr, gateway.ErrUnauthorized) && gerr.Status == 401:
			return gerr.Message, "your session may have expired, run 'login' again"
		case gerr.Kind == gateway.KindNetwork:
			return gerr.Message, "check the backend address (-b or SOSENS_BASE_URL)"
		case gerr.Kind == gateway.KindCanceled:
			return "Canceled", ""
		}
		return gerr.Message, ""
	}

	if errors.Is(err, context.Canceled) {
		return "Canceled", ""
	}
	return err.Error(), ""
}

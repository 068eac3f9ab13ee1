package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sosens/sosens/internal/client/models"
)

// AdminDashboard shows platform analytics and the newest users.
func (a *App) AdminDashboard(ctx context.Context) error {
	d, err := a.adminService.Dashboard(ctx)
	if err != nil {
		return err
	}
	if err := a.renderAnalytics(&d.Analytics); err != nil {
		return err
	}
	return a.renderUsers(&d.Users)
}

// Users lists accounts: users [role] [district] [skip].
func (a *App) Users(ctx context.Context, args []string) error {
	f := models.UserFilter{}
	if len(args) > 0 && args[0] != "-" && args[0] != "all" {
		f.Role = models.Role(args[0])
	}
	if len(args) > 1 && args[1] != "-" {
		f.District = args[1]
	}
	if len(args) > 2 {
		skip, err := strconv.Atoi(args[2])
		if err != nil || skip < 0 {
			return fmt.Errorf("usage: users [role] [district] [skip]")
		}
		f.Skip = skip
	}

	list, err := a.adminService.Users(ctx, f)
	if err != nil {
		return err
	}
	return a.renderUsers(list)
}

// Broadcast sends a free-text message to every farmer, optionally limited
// to a district.
func (a *App) Broadcast(ctx context.Context) error {
	msg, err := getSimpleText(a.reader, "Message", a.printer.Out())
	if err != nil {
		return err
	}
	district, err := getSimpleText(a.reader, "District (empty for all)", a.printer.Out())
	if err != nil {
		return err
	}

	res, err := a.adminService.Broadcast(ctx, models.BroadcastRequest{Message: msg, District: district})
	if err != nil {
		return err
	}
	a.renderAction(res, "Broadcast sent")
	return nil
}

// SendWeather triggers weather alerts for all subscribed farmers.
func (a *App) SendWeather(ctx context.Context) error {
	ok, err := getYesNo(a.reader, "Send weather alerts to all subscribed farmers?", a.printer.Out())
	if err != nil {
		return err
	}
	if ok == nil || !*ok {
		a.printer.Info("Canceled")
		return nil
	}

	res, err := a.adminService.SendWeather(ctx)
	if err != nil {
		return err
	}
	a.renderAction(res, "Weather notifications sent")
	return nil
}

// SendPredictions notifies farmers about a recommended crop.
func (a *App) SendPredictions(ctx context.Context) error {
	crop, err := getSimpleText(a.reader, "Crop", a.printer.Out())
	if err != nil {
		return err
	}
	district, err := getSimpleText(a.reader, "District (empty for all)", a.printer.Out())
	if err != nil {
		return err
	}
	msg, err := getSimpleText(a.reader, "Custom message (optional)", a.printer.Out())
	if err != nil {
		return err
	}

	res, err := a.adminService.SendPredictions(ctx, models.BulkPredictionRequest{Crop: crop, District: district, Message: msg})
	if err != nil {
		return err
	}
	a.renderAction(res, "Predictions sent")
	return nil
}

// Logs pages through notification delivery logs: logs [skip] [limit].
func (a *App) Logs(ctx context.Context, args []string) error {
	skip, limit := 0, 0
	var err error
	if len(args) > 0 {
		if skip, err = strconv.Atoi(args[0]); err != nil || skip < 0 {
			return fmt.Errorf("usage: logs [skip] [limit]")
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil || limit <= 0 {
			return fmt.Errorf("usage: logs [skip] [limit]")
		}
	}

	list, err := a.adminService.NotificationLogs(ctx, skip, limit)
	if err != nil {
		return err
	}
	return a.renderLogs(list)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sosens/sosens/internal/client/client"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/logging"
)

// DashboardUsersLimit is how many users the admin dashboard shows.
const DashboardUsersLimit = 10

// AdminService covers the administrator screens.
type AdminService interface {
	Dashboard(ctx context.Context) (*models.AdminDashboard, error)
	Analytics(ctx context.Context) (*models.Analytics, error)
	Users(ctx context.Context, f models.UserFilter) (*models.UserList, error)
	Broadcast(ctx context.Context, req models.BroadcastRequest) (*models.ActionResult, error)
	SendWeather(ctx context.Context) (*models.ActionResult, error)
	SendPredictions(ctx context.Context, req models.BulkPredictionRequest) (*models.ActionResult, error)
	NotificationLogs(ctx context.Context, skip, limit int) (*models.NotificationLogList, error)
}

type adminService struct {
	client client.Client
	logger logging.Logger
}

func NewAdminService(c client.Client, logger logging.Logger) AdminService {
	return &adminService{client: c, logger: logger.With("service", "admin")}
}

// Dashboard loads analytics and the first page of users concurrently. If
// either fails the whole dashboard fails.
func (a *adminService) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	var (
		analytics *models.Analytics
		users     *models.UserList
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		analytics, err = a.client.Analytics(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		users, err = a.client.Users(gctx, models.UserFilter{Skip: 0, Limit: DashboardUsersLimit})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("admin dashboard: %w", err)
	}
	return &models.AdminDashboard{Analytics: *analytics, Users: *users}, nil
}

func (a *adminService) Analytics(ctx context.Context) (*models.Analytics, error) {
	res, err := a.client.Analytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	return res, nil
}

func (a *adminService) Users(ctx context.Context, f models.UserFilter) (*models.UserList, error) {
	if f.Role != "" && f.Role != models.RoleFarmer && f.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: role must be one of: farmer, admin", ErrInvalidInput)
	}
	res, err := a.client.Users(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return res, nil
}

func (a *adminService) Broadcast(ctx context.Context, req models.BroadcastRequest) (*models.ActionResult, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := check(req); err != nil {
		return nil, err
	}
	res, err := a.client.Broadcast(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}
	a.logger.Info(ctx, "broadcast sent", "district", req.District, "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

func (a *adminService) SendWeather(ctx context.Context) (*models.ActionResult, error) {
	res, err := a.client.SendWeatherNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("send weather notifications: %w", err)
	}
	a.logger.Info(ctx, "weather notifications sent", "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

func (a *adminService) SendPredictions(ctx context.Context, req models.BulkPredictionRequest) (*models.ActionResult, error) {
	req.Crop = strings.TrimSpace(req.Crop)
	if err := check(req); err != nil {
		return nil, err
	}
	res, err := a.client.SendBulkPredictions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send predictions: %w", err)
	}
	a.logger.Info(ctx, "bulk predictions sent", "crop", req.Crop, "district", req.District, "sent", res.Sent)
	return res, nil
}

func (a *adminService) NotificationLogs(ctx context.Context, skip, limit int) (*models.NotificationLogList, error) {
	res, err := a.client.NotificationLogs(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("notification logs: %w", err)
	}
	return res, nil
}

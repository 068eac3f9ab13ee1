package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sosens/sosens/internal/client/client"
	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/logging"
)

// FarmerService covers soil readings, predictions and weather.
type FarmerService interface {
	Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error)
	SubmitReading(ctx context.Context, in models.SoilReadingInput) (*models.ActionResult, error)
	Recommendations(ctx context.Context) (*models.RecommendationList, error)
	SoilReadings(ctx context.Context) (*models.SoilReadingList, error)
	Weather(ctx context.Context) *models.Weather
	Dashboard(ctx context.Context) (*models.FarmerDashboard, error)
}

type farmerService struct {
	client client.Client
	logger logging.Logger
}

func NewFarmerService(c client.Client, logger logging.Logger) FarmerService {
	return &farmerService{client: c, logger: logger.With("service", "farmer")}
}

func (f *farmerService) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	res, err := f.client.Predict(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return res, nil
}

func (f *farmerService) SubmitReading(ctx context.Context, in models.SoilReadingInput) (*models.ActionResult, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	res, err := f.client.SubmitSoilReading(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("submit soil reading: %w", err)
	}
	return res, nil
}

func (f *farmerService) Recommendations(ctx context.Context) (*models.RecommendationList, error) {
	res, err := f.client.Recommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return res, nil
}

func (f *farmerService) SoilReadings(ctx context.Context) (*models.SoilReadingList, error) {
	res, err := f.client.SoilReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("soil readings: %w", err)
	}
	return res, nil
}

// Weather returns nil when conditions cannot be loaded; the caller simply
// leaves the weather section out.
func (f *farmerService) Weather(ctx context.Context) *models.Weather {
	w, err := f.client.Weather(ctx)
	if err != nil {
		f.logger.Warn(ctx, "weather unavailable", "error", err)
		return nil
	}
	return w
}

// Dashboard loads recommendations and soil readings concurrently. Either
// half that fails is shown as an empty list. Only cancellation of ctx is
// reported as an error.
func (f *farmerService) Dashboard(ctx context.Context) (*models.FarmerDashboard, error) {
	d := &models.FarmerDashboard{
		Recommendations: models.RecommendationList{Success: true, Recommendations: []models.Recommendation{}},
		Readings:        models.SoilReadingList{Success: true, Readings: []models.SoilReading{}},
	}

	var g errgroup.Group

	g.Go(func() error {
		recs, err := f.client.Recommendations(ctx)
		if err != nil {
			f.logger.Warn(ctx, "dashboard recommendations unavailable", "error", err)
			return nil
		}
		d.Recommendations = *recs
		return nil
	})

	g.Go(func() error {
		readings, err := f.client.SoilReadings(ctx)
		if err != nil {
			f.logger.Warn(ctx, "dashboard soil readings unavailable", "error", err)
			return nil
		}
		d.Readings = *readings
		return nil
	})

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("farmer dashboard: %w", err)
	}
	return d, nil
}

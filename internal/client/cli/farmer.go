package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/sosens/sosens/internal/client/models"
)

type soilSample struct {
	ph, nitrogen, phosphorus, potassium float64
	zinc, sulfur                        *float64
}

func readSoilSample(r *bufio.Reader, w io.Writer) (*soilSample, error) {
	var s soilSample
	for _, f := range []struct {
		prompt string
		dst    *float64
	}{
		{"Soil pH (0-14)", &s.ph},
		{"Nitrogen (mg/kg)", &s.nitrogen},
		{"Phosphorus (mg/kg)", &s.phosphorus},
		{"Potassium (mg/kg)", &s.potassium},
	} {
		v, err := getFloat(r, f.prompt, false, w)
		if err != nil {
			return nil, err
		}
		*f.dst = *v
	}

	var err error
	if s.zinc, err = getFloat(r, "Zinc (mg/kg)", true, w); err != nil {
		return nil, err
	}
	if s.sulfur, err = getFloat(r, "Sulfur (mg/kg)", true, w); err != nil {
		return nil, err
	}
	return &s, nil
}

// Predict asks for a soil sample and shows the recommended crop.
func (a *App) Predict(ctx context.Context) error {
	s, err := readSoilSample(a.reader, a.printer.Out())
	if err != nil {
		return err
	}
	weather, err := getYesNo(a.reader, "Include weather in the advice? [n]", a.printer.Out())
	if err != nil {
		return err
	}

	a.printer.Info("Analysing your soil...")
	res, err := a.farmerService.Predict(ctx, models.PredictionRequest{
		PH:             s.ph,
		Nitrogen:       s.nitrogen,
		Phosphorus:     s.phosphorus,
		Potassium:      s.potassium,
		Zinc:           s.zinc,
		Sulfur:         s.sulfur,
		IncludeWeather: weather,
	})
	if err != nil {
		return err
	}
	return a.renderPrediction(res)
}

// AddReading records a soil sample without asking for a prediction.
func (a *App) AddReading(ctx context.Context) error {
	s, err := readSoilSample(a.reader, a.printer.Out())
	if err != nil {
		return err
	}

	res, err := a.farmerService.SubmitReading(ctx, models.SoilReadingInput{
		PH:         s.ph,
		Nitrogen:   s.nitrogen,
		Phosphorus: s.phosphorus,
		Potassium:  s.potassium,
		Zinc:       s.zinc,
		Sulfur:     s.sulfur,
	})
	if err != nil {
		return err
	}
	a.renderAction(res, "Soil reading saved")
	return nil
}

func (a *App) Readings(ctx context.Context) error {
	list, err := a.farmerService.SoilReadings(ctx)
	if err != nil {
		return err
	}
	return a.renderReadings(list)
}

func (a *App) Recommendations(ctx context.Context) error {
	list, err := a.farmerService.Recommendations(ctx)
	if err != nil {
		return err
	}
	return a.renderRecommendations(list)
}

// Weather shows current conditions, or a notice when they are unavailable.
func (a *App) Weather(ctx context.Context) error {
	w := a.farmerService.Weather(ctx)
	if w == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.printer.Warning("Weather is not available right now")
		return nil
	}
	a.renderWeather(w)
	return nil
}

// Dashboard is the farmer home screen: profile summary, weather, latest
// recommendations and soil readings.
func (a *App) Dashboard(ctx context.Context) error {
	if u := a.authService.CurrentUser(ctx); u != nil {
		a.printer.Header("Hello, " + u.FullName)
		a.printer.Field("District", u.District)
	}

	d, err := a.farmerService.Dashboard(ctx)
	if err != nil {
		return err
	}

	// weather stays hidden when it fails
	if w := a.farmerService.Weather(ctx); w != nil {
		a.renderWeather(w)
	}

	if err := a.renderRecommendations(&d.Recommendations); err != nil {
		return err
	}
	return a.renderReadings(&d.Readings)
}

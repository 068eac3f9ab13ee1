package models

// PredictionRequest is a soil sample submitted for a crop prediction.
type PredictionRequest struct {
	PH             float64  `json:"ph" validate:"gte=0,lte=14"`
	Nitrogen       float64  `json:"nitrogen" validate:"gte=0"`
	Phosphorus     float64  `json:"phosphorus" validate:"gte=0"`
	Potassium      float64  `json:"potassium" validate:"gte=0"`
	Zinc           *float64 `json:"zinc,omitempty" validate:"omitempty,gte=0"`
	Sulfur         *float64 `json:"sulfur,omitempty" validate:"omitempty,gte=0"`
	IncludeWeather *bool    `json:"include_weather,omitempty"`
}

// CropScore is one ranked alternative crop.
type CropScore struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
}

// PredictionResponse is the backend's recommendation for a sample.
type PredictionResponse struct {
	Success          bool        `json:"success"`
	Crop             string      `json:"crop"`
	Confidence       float64     `json:"confidence"`
	SoilHealth       string      `json:"soil_health"`
	FertilizerAdvice string      `json:"fertilizer_advice"`
	PlantingSeason   string      `json:"planting_season"`
	WeatherAdvice    string      `json:"weather_advice,omitempty"`
	Alternatives     []CropScore `json:"alternatives"`
}

// Recommendation is a stored prediction from the user's history.
type Recommendation struct {
	ID                       int64       `json:"id"`
	UserID                   int64       `json:"user_id"`
	SoilReadingID            int64       `json:"soil_reading_id"`
	RecommendedCrop          string      `json:"recommended_crop"`
	ConfidenceScore          float64     `json:"confidence_score"`
	AlternativeCrops         []CropScore `json:"alternative_crops"`
	SoilHealthStatus         string      `json:"soil_health_status"`
	SoilIssues               []string    `json:"soil_issues"`
	FertilizerRecommendation string      `json:"fertilizer_recommendation"`
	PlantingSeason           string      `json:"planting_season"`
	WeatherAdvice            string      `json:"weather_advice,omitempty"`
	CreatedAt                string      `json:"created_at"`
}

// RecommendationList is the reshaped result of GET recommendations.
type RecommendationList struct {
	Success         bool
	Total           int
	Recommendations []Recommendation
}

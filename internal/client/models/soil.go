package models

// SoilReadingInput is the body of POST soil-readings.
type SoilReadingInput struct {
	PH         float64  `json:"ph" validate:"gte=0,lte=14"`
	Nitrogen   float64  `json:"nitrogen" validate:"gte=0"`
	Phosphorus float64  `json:"phosphorus" validate:"gte=0"`
	Potassium  float64  `json:"potassium" validate:"gte=0"`
	Zinc       *float64 `json:"zinc,omitempty" validate:"omitempty,gte=0"`
	Sulfur     *float64 `json:"sulfur,omitempty" validate:"omitempty,gte=0"`
}

// SoilReading is a stored soil sample.
type SoilReading struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"user_id"`
	PH          float64  `json:"ph"`
	Nitrogen    float64  `json:"nitrogen"`
	Phosphorus  float64  `json:"phosphorus"`
	Potassium   float64  `json:"potassium"`
	Zinc        *float64 `json:"zinc,omitempty"`
	Sulfur      *float64 `json:"sulfur,omitempty"`
	ReadingDate string   `json:"reading_date"`
}

// SoilReadingList is the reshaped result of GET soil-readings.
type SoilReadingList struct {
	Success  bool
	Total    int
	Readings []SoilReading
}

// Weather is the current conditions for the user's district.
type Weather struct {
	Success     bool    `json:"success"`
	District    string  `json:"district"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	Condition   string  `json:"condition"`
	Advice      string  `json:"advice"`
	UpdatedAt   string  `json:"updated_at"`
}

// FarmerDashboard bundles what the farmer home screen shows.
type FarmerDashboard struct {
	Recommendations RecommendationList
	Readings        SoilReadingList
}

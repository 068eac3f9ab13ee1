package client

import (
	"encoding/json"

	"github.com/sosens/sosens/internal/client/models"
)

const defaultPlantingSeason = "Check seasonal calendar"

// notFalse treats an absent success flag as success.
func notFalse(b *bool) bool {
	return b == nil || *b
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func orLen(total, n int) int {
	if total != 0 {
		return total
	}
	return n
}

// ---- recommendations ----

type recommendationPayload struct {
	ID                       int64           `json:"id"`
	UserID                   int64           `json:"user_id"`
	SoilReadingID            int64           `json:"soil_reading_id"`
	Crop                     string          `json:"crop"`
	RecommendedCrop          string          `json:"recommended_crop"`
	Confidence               float64         `json:"confidence"`
	ConfidenceScore          float64         `json:"confidence_score"`
	AlternativeCrops         json.RawMessage `json:"alternative_crops"`
	SoilHealth               string          `json:"soil_health"`
	SoilHealthStatus         string          `json:"soil_health_status"`
	SoilIssues               []string        `json:"soil_issues"`
	Fertilizer               string          `json:"fertilizer"`
	FertilizerRecommendation string          `json:"fertilizer_recommendation"`
	PlantingSeason           string          `json:"planting_season"`
	WeatherAdvice            string          `json:"weather_advice"`
	Date                     string          `json:"date"`
	CreatedAt                string          `json:"created_at"`
}

func (p recommendationPayload) toModel() models.Recommendation {
	confidence := p.Confidence
	if confidence == 0 {
		confidence = p.ConfidenceScore
	}

	issues := p.SoilIssues
	if issues == nil {
		issues = []string{}
	}

	return models.Recommendation{
		ID:                       p.ID,
		UserID:                   p.UserID,
		SoilReadingID:            p.SoilReadingID,
		RecommendedCrop:          firstString(p.Crop, p.RecommendedCrop),
		ConfidenceScore:          confidence,
		AlternativeCrops:         cropScores(p.AlternativeCrops),
		SoilHealthStatus:         firstString(p.SoilHealth, p.SoilHealthStatus),
		SoilIssues:               issues,
		FertilizerRecommendation: firstString(p.Fertilizer, p.FertilizerRecommendation),
		PlantingSeason:           firstString(p.PlantingSeason, defaultPlantingSeason),
		WeatherAdvice:            p.WeatherAdvice,
		CreatedAt:                firstString(p.Date, p.CreatedAt),
	}
}

// cropScores accepts either ranked objects or bare crop names.
func cropScores(raw json.RawMessage) []models.CropScore {
	out := []models.CropScore{}
	if len(raw) == 0 {
		return out
	}

	var scored []models.CropScore
	if err := json.Unmarshal(raw, &scored); err == nil {
		if scored != nil {
			out = scored
		}
		return out
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		for _, n := range names {
			out = append(out, models.CropScore{Crop: n})
		}
	}
	return out
}

type recommendationListPayload struct {
	Success         *bool                   `json:"success"`
	Total           int                     `json:"total"`
	Recommendations []recommendationPayload `json:"recommendations"`
}

func (p recommendationListPayload) toModel() *models.RecommendationList {
	list := &models.RecommendationList{
		Success:         true,
		Recommendations: make([]models.Recommendation, 0, len(p.Recommendations)),
	}
	if p.Recommendations == nil {
		list.Success = notFalse(p.Success)
	}
	for _, r := range p.Recommendations {
		list.Recommendations = append(list.Recommendations, r.toModel())
	}
	list.Total = orLen(p.Total, len(list.Recommendations))
	return list
}

// ---- soil readings ----

type soilReadingListPayload struct {
	Success  *bool                `json:"success"`
	Total    int                  `json:"total"`
	Readings []models.SoilReading `json:"readings"`
}

func (p soilReadingListPayload) toModel() *models.SoilReadingList {
	readings := p.Readings
	if readings == nil {
		readings = []models.SoilReading{}
	}
	return &models.SoilReadingList{
		Success:  notFalse(p.Success),
		Total:    orLen(p.Total, len(readings)),
		Readings: readings,
	}
}

// ---- analytics ----

type analyticsSummaryPayload struct {
	TotalUsers           int  `json:"total_users"`
	Farmers              int  `json:"farmers"`
	TotalReadings        int  `json:"total_readings"`
	TotalRecommendations int  `json:"total_recommendations"`
	TotalNotifications   *int `json:"total_notifications"`
	SentNotifications    *int `json:"sent_notifications"`
}

type analyticsPayload struct {
	Success    *bool                    `json:"success"`
	Summary    *analyticsSummaryPayload `json:"summary"`
	TopCrops   []models.CropCount       `json:"top_crops"`
	ByDistrict []models.DistrictCount   `json:"by_district"`
}

func (p analyticsPayload) toModel() *models.Analytics {
	a := &models.Analytics{
		Success:    notFalse(p.Success),
		TopCrops:   p.TopCrops,
		ByDistrict: p.ByDistrict,
	}
	if a.TopCrops == nil {
		a.TopCrops = []models.CropCount{}
	}
	if a.ByDistrict == nil {
		a.ByDistrict = []models.DistrictCount{}
	}
	if s := p.Summary; s != nil {
		a.Summary = models.AnalyticsSummary{
			TotalUsers:           s.TotalUsers,
			Farmers:              s.Farmers,
			TotalReadings:        s.TotalReadings,
			TotalRecommendations: s.TotalRecommendations,
			TotalNotifications:   s.TotalNotifications,
			SentNotifications:    s.SentNotifications,
		}
	}
	return a
}

// ---- users ----

type userListPayload struct {
	Success *bool                `json:"success"`
	Users   []models.UserProfile `json:"users"`
	Total   int                  `json:"total"`
}

// toModel keeps a missing total at zero rather than counting the page.
func (p userListPayload) toModel() *models.UserList {
	users := p.Users
	if users == nil {
		users = []models.UserProfile{}
	}
	return &models.UserList{
		Success: notFalse(p.Success),
		Users:   users,
		Total:   p.Total,
	}
}

// ---- notification logs ----

type notificationLogListPayload struct {
	Success *bool                    `json:"success"`
	Total   int                      `json:"total"`
	Logs    []models.NotificationLog `json:"logs"`
}

func (p notificationLogListPayload) toModel() *models.NotificationLogList {
	logs := p.Logs
	if logs == nil {
		logs = []models.NotificationLog{}
	}
	return &models.NotificationLogList{
		Success: notFalse(p.Success),
		Total:   orLen(p.Total, len(logs)),
		Logs:    logs,
	}
}

package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sosens/sosens/internal/client/models"
	"github.com/sosens/sosens/internal/client/output"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optNum(v *float64) string {
	if v == nil {
		return "-"
	}
	return num(*v)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// shortDate keeps the calendar date of a backend timestamp.
func shortDate(s string) string {
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}

func (a *App) table(headers ...string) *output.Table {
	return output.NewTable(a.printer.Out(), headers...)
}

func (a *App) renderProfile(u *models.UserProfile, expires time.Time, hasExpiry bool) {
	a.printer.Header(u.FullName)
	a.printer.Field("Role", string(u.Role))
	a.printer.Field("Phone", u.PhoneNumber)
	a.printer.Field("Email", u.Email)
	a.printer.Field("District", u.District)
	a.printer.Field("Sector", u.Sector)
	a.printer.Field("Village", u.Village)
	if u.FarmSize != nil {
		a.printer.Field("Farm size (ha)", num(*u.FarmSize))
	}
	a.printer.Field("Preferred contact", string(u.PreferredContact))
	a.printer.Field("Notifications", yesNo(u.ReceiveNotifications))
	a.printer.Field("Member since", shortDate(u.CreatedAt))
	a.printer.Field("Last login", u.LastLogin)
	if hasExpiry {
		a.printer.Field("Session expires", expires.Local().Format(time.DateTime))
	}
}

func (a *App) renderPrediction(p *models.PredictionResponse) error {
	a.printer.Header("Crop recommendation")
	a.printer.Success("Plant %s (%s confidence)", a.printer.Bold(p.Crop), pct(p.Confidence))
	a.printer.Field("Soil health", p.SoilHealth)
	a.printer.Field("Fertilizer", p.FertilizerAdvice)
	a.printer.Field("Planting season", p.PlantingSeason)
	a.printer.Field("Weather advice", p.WeatherAdvice)

	if len(p.Alternatives) == 0 {
		return nil
	}
	a.printer.Header("Alternatives")
	t := a.table("crop", "confidence")
	for _, alt := range p.Alternatives {
		t.AddRow(alt.Crop, pct(alt.Confidence))
	}
	return t.Render()
}

func (a *App) renderRecommendations(list *models.RecommendationList) error {
	a.printer.Header(fmt.Sprintf("Recommendations (%d)", list.Total))
	if len(list.Recommendations) == 0 {
		a.printer.Print("No recommendations yet. Run 'predict' to get one.")
		return nil
	}
	t := a.table("date", "crop", "confidence", "soil health", "season")
	for _, r := range list.Recommendations {
		t.AddRow(shortDate(r.CreatedAt), r.RecommendedCrop, pct(r.ConfidenceScore), r.SoilHealthStatus, r.PlantingSeason)
	}
	return t.Render()
}

func (a *App) renderReadings(list *models.SoilReadingList) error {
	a.printer.Header(fmt.Sprintf("Soil readings (%d)", list.Total))
	if len(list.Readings) == 0 {
		a.printer.Print("No soil readings yet. Run 'addreading' to record one.")
		return nil
	}
	t := a.table("date", "pH", "N", "P", "K", "Zn", "S")
	for _, r := range list.Readings {
		t.AddRow(shortDate(r.ReadingDate), num(r.PH), num(r.Nitrogen), num(r.Phosphorus), num(r.Potassium), optNum(r.Zinc), optNum(r.Sulfur))
	}
	return t.Render()
}

func (a *App) renderWeather(w *models.Weather) {
	a.printer.Header("Weather in " + w.District)
	a.printer.Field("Conditions", w.Condition)
	a.printer.Field("Temperature", num(w.Temperature)+" °C")
	a.printer.Field("Humidity", num(w.Humidity)+" %")
	a.printer.Field("Rainfall", num(w.Rainfall)+" mm")
	a.printer.Field("Advice", w.Advice)
	a.printer.Field("Updated", w.UpdatedAt)
}

func (a *App) renderAnalytics(an *models.Analytics) error {
	s := an.Summary
	a.printer.Header("Platform summary")
	a.printer.Field("Users", strconv.Itoa(s.TotalUsers))
	a.printer.Field("Farmers", strconv.Itoa(s.Farmers))
	a.printer.Field("Soil readings", strconv.Itoa(s.TotalReadings))
	a.printer.Field("Recommendations", strconv.Itoa(s.TotalRecommendations))
	if s.TotalNotifications != nil || s.SentNotifications != nil {
		a.printer.Field("Notifications sent", optInt(s.SentNotifications)+" / "+optInt(s.TotalNotifications))
	}

	if len(an.TopCrops) > 0 {
		a.printer.Header("Top crops")
		t := a.table("crop", "count")
		for _, c := range an.TopCrops {
			t.AddRow(c.Crop, strconv.Itoa(c.Count))
		}
		if err := t.Render(); err != nil {
			return err
		}
	}

	if len(an.ByDistrict) > 0 {
		a.printer.Header("Farmers by district")
		t := a.table("district", "count")
		for _, d := range an.ByDistrict {
			t.AddRow(d.District, strconv.Itoa(d.Count))
		}
		if err := t.Render(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) renderUsers(list *models.UserList) error {
	a.printer.Header(fmt.Sprintf("Users (%d shown, %d total)", len(list.Users), list.Total))
	if len(list.Users) == 0 {
		a.printer.Print("No users found.")
		return nil
	}
	t := a.table("id", "name", "role", "district", "contact", "active")
	for _, u := range list.Users {
		t.AddRow(strconv.FormatInt(u.ID, 10), u.FullName, string(u.Role), u.District, u.Contact(), yesNo(u.IsActive))
	}
	return t.Render()
}

func (a *App) renderLogs(list *models.NotificationLogList) error {
	a.printer.Header(fmt.Sprintf("Notification logs (%d)", list.Total))
	if len(list.Logs) == 0 {
		a.printer.Print("No notifications sent yet.")
		return nil
	}
	t := a.table("date", "type", "channel", "recipient", "status")
	for _, l := range list.Logs {
		t.AddRow(shortDate(l.CreatedAt), l.Type, l.Channel, l.Recipient, l.Status)
	}
	return t.Render()
}

func (a *App) renderAction(res *models.ActionResult, fallback string) {
	msg := res.Message
	if msg == "" {
		msg = fallback
	}
	if res.Sent > 0 || res.Failed > 0 {
		msg = fmt.Sprintf("%s (sent %d, failed %d)", msg, res.Sent, res.Failed)
	}
	a.printer.Success("%s", msg)
}

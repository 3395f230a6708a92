package services

import (
	"time"

	"nutrisnap/models"
)

// WeeklyBucket is one day's aggregated calories within an anchored week.
// Derived on every read, never persisted.
type WeeklyBucket struct {
	Label         string  `json:"label"`
	TotalCalories float64 `json:"total_calories"`
	OverLimit     bool    `json:"over_limit"`
}

// NutrientTotals is an additive sum over a day-filtered set of entries.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
}

// LimitGauge pairs a total with its limit for threshold coloring. Percent
// saturates at 100; the total itself is never clamped, Over carries the
// overflow signal instead.
type LimitGauge struct {
	Total   float64 `json:"total"`
	Limit   float64 `json:"limit"`
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
}

var dayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekRange returns the Sunday 00:00:00 through Saturday 23:59:59.999...
// window containing the anchor date, in the anchor's location.
func WeekRange(anchor time.Time) (start, end time.Time) {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// PrevWeek and NextWeek shift the anchor by exactly seven days, so a
// prev-then-next round trip restores the original anchor.
func PrevWeek(anchor time.Time) time.Time { return anchor.AddDate(0, 0, -7) }
func NextWeek(anchor time.Time) time.Time { return anchor.AddDate(0, 0, 7) }

// AggregateWeek buckets log entries into the anchored week, one bucket per
// day of week in the anchor's location (0 = Sunday). Entries outside the
// window are ignored.
// Deterministic for a fixed (logs, anchor, limit) input.
func AggregateWeek(logs []models.FoodLog, anchor time.Time, calorieLimit float64) []WeeklyBucket {
	start, end := WeekRange(anchor)

	totals := [7]float64{}
	for _, entry := range logs {
		if entry.LoggedAt.Before(start) || entry.LoggedAt.After(end) {
			continue
		}
		totals[int(entry.LoggedAt.In(start.Location()).Weekday())] += entry.Calories
	}

	buckets := make([]WeeklyBucket, 7)
	for i := 0; i < 7; i++ {
		buckets[i] = WeeklyBucket{
			Label:         dayLabels[i],
			TotalCalories: totals[i],
			OverLimit:     totals[i] > calorieLimit,
		}
	}
	return buckets
}

// FilterDay returns the entries of the anchored week that fall on the given
// day index (0 = Sunday). Day selection never moves the anchor; it only
// changes which entries feed the nutrient totals.
func FilterDay(logs []models.FoodLog, anchor time.Time, day int) []models.FoodLog {
	start, end := WeekRange(anchor)
	var out []models.FoodLog
	for _, entry := range logs {
		if entry.LoggedAt.Before(start) || entry.LoggedAt.After(end) {
			continue
		}
		if int(entry.LoggedAt.In(start.Location()).Weekday()) == day {
			out = append(out, entry)
		}
	}
	return out
}

// SumNutrients adds up the nutrient fields across the given entries.
func SumNutrients(logs []models.FoodLog) NutrientTotals {
	var t NutrientTotals
	for _, entry := range logs {
		t.Calories += entry.Calories
		t.Protein += entry.Protein
		t.Carbs += entry.Carbs
		t.Fat += entry.Fat
		t.Sugar += entry.Sugar
	}
	return t
}

// GaugeAgainst computes the percent-of-limit for a nutrient total. A zero or
// negative limit is treated as an effective max of 1 so the display
// saturates instead of dividing by zero.
func GaugeAgainst(total, limit float64) LimitGauge {
	max := limit
	if max <= 0 {
		max = 1
	}
	percent := total / max * 100
	if percent > 100 {
		percent = 100
	}
	return LimitGauge{
		Total:   total,
		Limit:   limit,
		Percent: percent,
		Over:    total > limit,
	}
}

// ---------- DB-backed wrapper ----------

type InsightsService struct {
	logs   *LogService
	limits *LimitsService
}

func NewInsightsService(logs *LogService, limits *LimitsService) *InsightsService {
	return &InsightsService{logs: logs, limits: limits}
}

type DayInsights struct {
	Date     string     `json:"date"`
	Calories LimitGauge `json:"calories"`
	Protein  LimitGauge `json:"protein"`
	Carbs    LimitGauge `json:"carbs"`
	Fat      LimitGauge `json:"fat"`
	Sugar    LimitGauge `json:"sugar"`
}

type WeeklyInsights struct {
	WeekStart   string         `json:"week_start"`
	WeekEnd     string         `json:"week_end"`
	SelectedDay int            `json:"selected_day"`
	Buckets     []WeeklyBucket `json:"buckets"`
	Day         DayInsights    `json:"day"`
}

// Weekly loads the anchored week's entries and returns the bar-chart buckets
// plus the selected day's nutrient gauges.
func (s *InsightsService) Weekly(userID uint, anchor time.Time, day int) (*WeeklyInsights, error) {
	if day < 0 || day > 6 {
		day = int(anchor.Weekday())
	}

	limits, err := s.limits.Get(userID)
	if err != nil {
		return nil, err
	}

	start, end := WeekRange(anchor)
	logs, err := s.logs.ListBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	dayLogs := FilterDay(logs, anchor, day)
	out := &WeeklyInsights{
		WeekStart:   start.Format("2006-01-02"),
		WeekEnd:     end.Format("2006-01-02"),
		SelectedDay: day,
		Buckets:     AggregateWeek(logs, anchor, limits.Calories),
		Day:         s.dayInsights(start.AddDate(0, 0, day), dayLogs, limits),
	}
	return out, nil
}

// DayTotals returns the nutrient gauges for a single calendar day.
func (s *InsightsService) DayTotals(userID uint, date time.Time) (*DayInsights, error) {
	limits, err := s.limits.Get(userID)
	if err != nil {
		return nil, err
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	logs, err := s.logs.ListBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	out := s.dayInsights(start, logs, limits)
	return &out, nil
}

func (s *InsightsService) dayInsights(date time.Time, logs []models.FoodLog, limits *models.NutrientLimits) DayInsights {
	totals := SumNutrients(logs)
	return DayInsights{
		Date:     date.Format("2006-01-02"),
		Calories: GaugeAgainst(totals.Calories, limits.Calories),
		Protein:  GaugeAgainst(totals.Protein, limits.Protein),
		Carbs:    GaugeAgainst(totals.Carbs, limits.Carbs),
		Fat:      GaugeAgainst(totals.Fat, limits.Fat),
		Sugar:    GaugeAgainst(totals.Sugar, limits.Sugar),
	}
}

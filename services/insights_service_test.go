package services

import (
	"testing"
	"time"

	"nutrisnap/models"
)

// Wednesday, 2025-06-18. Its week runs Sunday 2025-06-15 through
// Saturday 2025-06-21.
var anchorWed = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

func entryAt(t time.Time, calories float64) models.FoodLog {
	return models.FoodLog{LoggedAt: t, Calories: calories}
}

func TestWeekRangeAnchorsOnSunday(t *testing.T) {
	start, end := WeekRange(anchorWed)

	if start.Weekday() != time.Sunday {
		t.Errorf("week start weekday = %v, want Sunday", start.Weekday())
	}
	if !start.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v", start)
	}
	if !end.Before(start.AddDate(0, 0, 7)) {
		t.Errorf("week end %v must fall before the next Sunday", end)
	}
	if end.Weekday() != time.Saturday {
		t.Errorf("week end weekday = %v, want Saturday", end.Weekday())
	}
}

func TestWeekRangeOfSundayIsItsOwnStart(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	start, _ := WeekRange(sunday)
	if !start.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("a Sunday anchor should start its own week, got %v", start)
	}
}

func TestPrevNextWeekRoundTrip(t *testing.T) {
	back := NextWeek(PrevWeek(anchorWed))
	if !back.Equal(anchorWed) {
		t.Errorf("prev-then-next moved the anchor: %v", back)
	}

	prevStart, _ := WeekRange(PrevWeek(anchorWed))
	curStart, _ := WeekRange(anchorWed)
	if curStart.Sub(prevStart) != 7*24*time.Hour {
		t.Errorf("adjacent week starts are %v apart", curStart.Sub(prevStart))
	}
}

func TestAggregateWeekBucketsAndLimitFlag(t *testing.T) {
	start, _ := WeekRange(anchorWed)
	var logs []models.FoodLog
	for day := 0; day < 7; day++ {
		logs = append(logs, entryAt(start.AddDate(0, 0, day).Add(12*time.Hour), 100))
	}

	buckets := AggregateWeek(logs, anchorWed, 200)
	if len(buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(buckets))
	}
	for i, b := range buckets {
		if b.Label != dayLabels[i] {
			t.Errorf("bucket %d label = %q, want %q", i, b.Label, dayLabels[i])
		}
		if b.TotalCalories != 100 {
			t.Errorf("bucket %d total = %v, want 100", i, b.TotalCalories)
		}
		if b.OverLimit {
			t.Errorf("bucket %d flagged over a 200 limit at 100 calories", i)
		}
	}

	for _, b := range AggregateWeek(logs, anchorWed, 50) {
		if !b.OverLimit {
			t.Errorf("bucket %q not flagged over a 50 limit at 100 calories", b.Label)
		}
	}
}

func TestAggregateWeekIgnoresOutOfWindowEntries(t *testing.T) {
	start, end := WeekRange(anchorWed)
	logs := []models.FoodLog{
		entryAt(start.Add(-time.Hour), 500),    // previous week
		entryAt(end.Add(time.Hour), 500),       // following week
		entryAt(start.Add(8*time.Hour), 120),   // Sunday, in window
	}

	buckets := AggregateWeek(logs, anchorWed, 2500)
	if buckets[0].TotalCalories != 120 {
		t.Errorf("Sunday total = %v, want 120", buckets[0].TotalCalories)
	}
	var sum float64
	for _, b := range buckets {
		sum += b.TotalCalories
	}
	if sum != 120 {
		t.Errorf("week total = %v, want 120 (out-of-window entries leaked in)", sum)
	}
}

func TestAggregateWeekExactlyAtLimitIsNotOver(t *testing.T) {
	start, _ := WeekRange(anchorWed)
	logs := []models.FoodLog{entryAt(start.Add(12*time.Hour), 200)}
	buckets := AggregateWeek(logs, anchorWed, 200)
	if buckets[0].OverLimit {
		t.Error("a total exactly at the limit must not be flagged over")
	}
}

func TestFilterDaySelectsWithinWeekOnly(t *testing.T) {
	start, _ := WeekRange(anchorWed)
	logs := []models.FoodLog{
		entryAt(start.Add(9*time.Hour), 10),                 // Sunday
		entryAt(start.AddDate(0, 0, 3).Add(9*time.Hour), 20), // Wednesday
		entryAt(start.AddDate(0, 0, 3).Add(19*time.Hour), 30),
		entryAt(start.AddDate(0, 0, 10), 40), // next week's Wednesday
	}

	wed := FilterDay(logs, anchorWed, 3)
	if len(wed) != 2 {
		t.Fatalf("got %d Wednesday entries, want 2", len(wed))
	}
	if wed[0].Calories != 20 || wed[1].Calories != 30 {
		t.Errorf("wrong entries selected: %+v", wed)
	}

	if got := FilterDay(logs, anchorWed, 5); len(got) != 0 {
		t.Errorf("Friday has no entries, got %d", len(got))
	}
}

func TestBucketingUsesAnchorLocation(t *testing.T) {
	// 10:00 Monday in UTC+14 is 20:00 Sunday UTC. The entry passes the UTC
	// window filter and must land in Sunday's bucket, not Monday's.
	east := time.FixedZone("UTC+14", 14*60*60)
	logs := []models.FoodLog{entryAt(time.Date(2025, 6, 16, 10, 0, 0, 0, east), 80)}

	buckets := AggregateWeek(logs, anchorWed, 2500)
	if buckets[0].TotalCalories != 80 {
		t.Errorf("Sunday total = %v, want 80", buckets[0].TotalCalories)
	}
	if buckets[1].TotalCalories != 0 {
		t.Errorf("Monday total = %v, want 0", buckets[1].TotalCalories)
	}

	if got := FilterDay(logs, anchorWed, 0); len(got) != 1 {
		t.Errorf("Sunday filter selected %d entries, want 1", len(got))
	}
	if got := FilterDay(logs, anchorWed, 1); len(got) != 0 {
		t.Errorf("Monday filter selected %d entries, want 0", len(got))
	}
}

func TestSumNutrientsIsAdditive(t *testing.T) {
	logs := []models.FoodLog{
		{Calories: 10, Protein: 1, Carbs: 2, Fat: 3, Sugar: 4},
		{Calories: 20, Protein: 5, Carbs: 6, Fat: 7, Sugar: 8},
	}
	got := SumNutrients(logs)
	want := NutrientTotals{Calories: 30, Protein: 6, Carbs: 8, Fat: 10, Sugar: 12}
	if got != want {
		t.Errorf("SumNutrients = %+v, want %+v", got, want)
	}

	if empty := SumNutrients(nil); empty != (NutrientTotals{}) {
		t.Errorf("empty set should sum to zero, got %+v", empty)
	}
}

func TestGaugeAgainst(t *testing.T) {
	g := GaugeAgainst(30, 50)
	if g.Percent != 60 || g.Over {
		t.Errorf("30 of 50 = %+v, want 60%% and not over", g)
	}

	g = GaugeAgainst(75, 50)
	if g.Percent != 100 {
		t.Errorf("percent should saturate at 100, got %v", g.Percent)
	}
	if !g.Over {
		t.Error("75 of 50 must be flagged over")
	}
	if g.Total != 75 {
		t.Errorf("total must not be clamped, got %v", g.Total)
	}

	g = GaugeAgainst(50, 50)
	if g.Over {
		t.Error("a total exactly at the limit is not over")
	}
}

func TestGaugeAgainstDegenerateLimit(t *testing.T) {
	for _, limit := range []float64{0, -10} {
		g := GaugeAgainst(5, limit)
		if g.Percent != 100 {
			t.Errorf("limit %v: percent = %v, want saturated 100", limit, g.Percent)
		}
		if !g.Over {
			t.Errorf("limit %v: any positive total is over", limit)
		}
	}

	g := GaugeAgainst(0, 0)
	if g.Percent != 0 || g.Over {
		t.Errorf("zero total against zero limit = %+v, want 0%% and not over", g)
	}
}

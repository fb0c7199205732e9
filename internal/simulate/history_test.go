package simulate

import (
	"math"
	"reflect"
	"testing"
	"time"

	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/models"
)

func baseRequest() Request {
	return Request{
		Start:             time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:               time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Granularity:       models.GranularityMonthly,
		TargetNetWorth:    100000,
		TargetLiabilities: 25000,
	}
}

func TestHistory_Deterministic(t *testing.T) {
	req := baseRequest()

	first, err := History(req)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	second, err := History(req)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Identical requests produced different series")
	}
}

func TestHistory_FinalPointMatchesTarget(t *testing.T) {
	req := baseRequest()

	points, err := History(req)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("History returned no points")
	}

	last := points[len(points)-1]
	if !last.Date.Equal(req.End) {
		t.Errorf("Final date = %v, want %v", last.Date, req.End)
	}
	if last.NetWorth != req.TargetNetWorth {
		t.Errorf("Final net worth = %v, want exactly %v", last.NetWorth, req.TargetNetWorth)
	}
	if last.TotalLiabilities != req.TargetLiabilities {
		t.Errorf("Final liabilities = %v, want exactly %v", last.TotalLiabilities, req.TargetLiabilities)
	}
	if last.TotalAssets != req.TargetNetWorth+req.TargetLiabilities {
		t.Errorf("Final assets = %v, want %v", last.TotalAssets, req.TargetNetWorth+req.TargetLiabilities)
	}
}

func TestHistory_PointCount(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(365 * 24 * time.Hour)

	tests := []struct {
		granularity models.Granularity
		want        int
	}{
		{models.GranularityDaily, 366},   // 365/1 + 1
		{models.GranularityWeekly, 53},   // floor(365/7) + 1
		{models.GranularityMonthly, 13},  // floor(365/30) + 1
		{models.GranularityQuarterly, 5}, // floor(365/90) + 1
	}

	for _, tt := range tests {
		points, err := History(Request{
			Start:          start,
			End:            end,
			Granularity:    tt.granularity,
			TargetNetWorth: 50000,
		})
		if err != nil {
			t.Fatalf("History(%s) failed: %v", tt.granularity, err)
		}
		if len(points) != tt.want {
			t.Errorf("History(%s) returned %d points, want %d", tt.granularity, len(points), tt.want)
		}
	}
}

func TestHistory_Chronological(t *testing.T) {
	points, err := History(baseRequest())
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			t.Fatalf("Points out of order at %d: %v then %v", i, points[i-1].Date, points[i].Date)
		}
	}
}

func TestHistory_StartEqualsEnd_SingleExactPoint(t *testing.T) {
	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	points, err := History(Request{
		Start:             day,
		End:               day,
		Granularity:       models.GranularityDaily,
		TargetNetWorth:    12345.67,
		TargetLiabilities: 1000,
	})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Got %d points, want 1", len(points))
	}
	if points[0].NetWorth != 12345.67 {
		t.Errorf("Net worth = %v, want exactly 12345.67", points[0].NetWorth)
	}
}

func TestHistory_EndBeforeStart_ValidationError(t *testing.T) {
	req := baseRequest()
	req.Start, req.End = req.End, req.Start

	_, err := History(req)
	if err == nil {
		t.Fatal("Expected error for end before start")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestHistory_UnknownGranularity_ValidationError(t *testing.T) {
	req := baseRequest()
	req.Granularity = models.Granularity("hourly")

	_, err := History(req)
	if err == nil {
		t.Fatal("Expected error for unknown granularity")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestHistory_MonthlyZeroLiabilities_StaysZero(t *testing.T) {
	req := baseRequest()
	req.TargetLiabilities = 0

	points, err := History(req)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	for i, p := range points {
		if p.TotalLiabilities != 0 {
			t.Fatalf("Point %d has liabilities %v, want 0", i, p.TotalLiabilities)
		}
	}
	last := points[len(points)-1]
	if last.NetWorth != 100000 {
		t.Errorf("Final net worth = %v, want 100000", last.NetWorth)
	}
}

func TestHistory_NonNegativeAssetsAndLiabilities(t *testing.T) {
	// A tiny target makes the shock term large relative to the trend, which
	// is where the clamps matter.
	req := Request{
		Start:             time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:               time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Granularity:       models.GranularityMonthly,
		TargetNetWorth:    10,
		TargetLiabilities: 5,
	}

	points, err := History(req)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	for i, p := range points {
		if p.TotalAssets < 0 {
			t.Errorf("Point %d has negative assets %v", i, p.TotalAssets)
		}
		if p.TotalLiabilities < 0 {
			t.Errorf("Point %d has negative liabilities %v", i, p.TotalLiabilities)
		}
	}
}

func TestHistory_LiabilitiesStayNearTarget(t *testing.T) {
	// Monthly decay and jitter are both well under 1% per sample, so a year
	// of drift stays within a few percent of the anchor.
	req := baseRequest()

	points, err := History(req)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	for i, p := range points {
		if diff := math.Abs(p.TotalLiabilities - req.TargetLiabilities); diff > req.TargetLiabilities*0.1 {
			t.Errorf("Point %d liabilities %v drifted more than 10%% from %v", i, p.TotalLiabilities, req.TargetLiabilities)
		}
	}
}

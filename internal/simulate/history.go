package simulate

import (
	"math"
	"time"

	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/models"
)

// Simulation constants. These are model parameters of the synthetic
// history, not values derived from input.
const (
	// AnnualGrowthRate is the compound growth rate the trend line follows.
	AnnualGrowthRate = 0.08

	// AnnualVolatility is the annualized standard deviation of the random
	// shock, scaled down to the sampling interval via sqrt(days/365).
	AnnualVolatility = 0.12

	// SeasonalAmplitude scales the day-of-year sine term.
	SeasonalAmplitude = 0.02

	// CycleAmplitude and CycleCount shape the economic-cycle sine term
	// (CycleCount full cycles over the requested span).
	CycleAmplitude = 0.03
	CycleCount     = 3

	// LiabilityDecayRate is the per-sample multiplicative paydown applied
	// at monthly granularity.
	LiabilityDecayRate = 0.0005

	// LiabilityJitterBand clamps the per-sample liability jitter fraction.
	LiabilityJitterBand = 0.002

	// MonthlyContribution is the linear accrual added to total assets per
	// monthly sample.
	MonthlyContribution = 250.0

	daysPerYear = 365.0
)

// Request describes one history generation run.
type Request struct {
	Start       time.Time
	End         time.Time
	Granularity models.Granularity

	// TargetNetWorth and TargetLiabilities anchor the final sample. They
	// normally come from the live aggregates.
	TargetNetWorth    float64
	TargetLiabilities float64
}

// History synthesizes a plausible, reproducible net-worth series between
// the requested dates, ending exactly at the target totals. The series is
// chronological, inclusive of both endpoints and has floor(duration/interval)+1
// points. Calling again with identical inputs reproduces an identical
// sequence.
func History(req Request) ([]models.HistoryPoint, error) {
	intervalDays := req.Granularity.Days()
	if intervalDays == 0 {
		return nil, apperrors.Validationf("unknown granularity %q", req.Granularity)
	}
	if req.End.Before(req.Start) {
		return nil, apperrors.Validation("end date must not be before start date")
	}

	targetLiabilities := math.Max(0, req.TargetLiabilities)
	targetAssets := math.Max(0, req.TargetNetWorth+targetLiabilities)

	interval := time.Duration(intervalDays) * 24 * time.Hour
	duration := req.End.Sub(req.Start)
	n := int(duration / interval)

	// Back-solve the starting net worth so compounding at the fixed annual
	// rate over the full duration lands exactly on the target.
	years := duration.Hours() / (24 * daysPerYear)
	startNetWorth := req.TargetNetWorth / math.Pow(1+AnnualGrowthRate, years)

	intervalVolatility := AnnualVolatility * math.Sqrt(float64(intervalDays)/daysPerYear)
	monthly := req.Granularity == models.GranularityMonthly

	points := make([]models.HistoryPoint, 0, n+1)
	liabilities := targetLiabilities

	for i := 0; i <= n; i++ {
		if i == n {
			// The final sample always equals the requested anchor exactly,
			// overriding whatever the perturbation model produced.
			points = append(points, models.HistoryPoint{
				Date:             req.End,
				NetWorth:         req.TargetNetWorth,
				TotalAssets:      targetAssets,
				TotalLiabilities: targetLiabilities,
			})
			break
		}

		date := req.Start.Add(time.Duration(i) * interval)
		progress := float64(i) / float64(n)

		trend := startNetWorth * math.Pow(1+AnnualGrowthRate, years*progress)
		seasonal := SeasonalAmplitude * math.Sin(2*math.Pi*float64(date.YearDay())/daysPerYear)
		cycle := CycleAmplitude * math.Sin(2*math.Pi*CycleCount*progress)

		// Reseeded from the sample's own date: the same (date, granularity)
		// always reproduces the same perturbed value.
		rng := NewRand(DateSeed(date))
		shock := rng.Normal(0, intervalVolatility)

		netWorth := trend * (1 + seasonal + cycle + shock)

		if monthly {
			jitter := clamp(rng.Normal(0, LiabilityJitterBand), -LiabilityJitterBand, LiabilityJitterBand)
			liabilities = liabilities*(1-LiabilityDecayRate) + liabilities*jitter
			if liabilities < 0 {
				liabilities = 0
			}
		}

		assets := netWorth + liabilities
		if monthly {
			assets += MonthlyContribution * float64(i)
		}
		if assets < 0 {
			assets = 0
		}

		points = append(points, models.HistoryPoint{
			Date:             date,
			NetWorth:         netWorth,
			TotalAssets:      assets,
			TotalLiabilities: liabilities,
		})
	}

	return points, nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ABOUTME: Synthetic wearable data generator for demos without a device.
// ABOUTME: Seven days at 3-hour spacing with latent health-condition flags.
package wearable

import (
	"math/rand"
	"time"

	"github.com/harperreed/healthtwin/internal/models"
)

const (
	sampleCount    = 56 // 7 days x 8 readings/day
	sampleInterval = 3 * time.Hour
)

// Generate produces a synthetic wearable series for demonstration. Two
// latent condition flags are drawn once and shift every metric's baseline
// for the whole series. Readings are scaled by a day/night factor,
// perturbed with bounded uniform noise, and clamped to plausible ranges.
// This exists to exercise the ingestion and scoring pipeline; it is not
// a statistical model.
func Generate(patientID string, now time.Time, rng *rand.Rand) []models.WearableSample {
	isDiabetic := rng.Intn(2) == 1
	hasHeartIssues := rng.Intn(2) == 1

	samples := make([]models.WearableSample, 0, sampleCount)
	for i := 0; i < sampleCount; i++ {
		ts := now.Add(-time.Duration(sampleCount-1-i) * sampleInterval)
		hour := ts.Hour()
		day := hour >= 8 && hour <= 20
		timeFactor := 0.8
		if day {
			timeFactor = 1.0
		}

		sample := models.WearableSample{Timestamp: ts, PatientID: patientID}

		baseHR := 70.0
		if hasHeartIssues {
			baseHR = 85
		}
		sample.SetValue(models.ParamHeartRate,
			clamp(baseHR*timeFactor+noise(rng, 10), 50, 120))

		baseGlucose := 90.0
		if isDiabetic {
			baseGlucose = 150
		}
		sample.SetValue(models.ParamBloodGlucose,
			clamp(baseGlucose*timeFactor+noise(rng, 20), 70, 200))

		baseSys := 120.0
		if hasHeartIssues {
			baseSys = 140
		}
		sample.SetValue(models.ParamSystolicBP,
			clamp(baseSys*timeFactor+noise(rng, 10), 100, 160))

		baseDia := 80.0
		if hasHeartIssues {
			baseDia = 90
		}
		sample.SetValue(models.ParamDiastolicBP,
			clamp(baseDia*timeFactor+noise(rng, 5), 60, 100))

		baseOxygen := 98.0
		if hasHeartIssues {
			baseOxygen = 95
		}
		sample.SetValue(models.ParamOxygenLevel,
			clamp(baseOxygen+noise(rng, 2), 90, 100))

		baseSteps := 200.0
		if day {
			baseSteps = 1000
		}
		steps := baseSteps + noise(rng, 200)
		if steps < 0 {
			steps = 0
		}
		sample.SetValue(models.ParamSteps, steps)

		samples = append(samples, sample)
	}

	return samples
}

// noise returns an integer-valued perturbation in [-n, n].
func noise(rng *rand.Rand, n int) float64 {
	return float64(rng.Intn(2*n+1) - n)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

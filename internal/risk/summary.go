// ABOUTME: Aggregation of a wearable series into scoring inputs.
// ABOUTME: Latest non-missing value per metric plus mean step count.
package risk

import (
	"github.com/harperreed/healthtwin/internal/models"
)

// Summary holds the wearable-derived inputs the scorers consume: the
// latest reading per metric across the time-sorted series, and the mean
// of all step readings.
type Summary struct {
	Latest      map[models.Parameter]float64
	MeanSteps   float64
	HasSteps    bool
	SampleCount int
}

// Summarize aggregates a wearable series. The series is sorted by
// timestamp transiently; the caller's slice order is not touched. For
// each metric the latest sample carrying it wins, so sparse series still
// produce a value for every metric that appears anywhere.
func Summarize(p *models.PatientRecord) Summary {
	sorted := p.SortedWearableSeries()

	s := Summary{
		Latest:      make(map[models.Parameter]float64),
		SampleCount: len(sorted),
	}

	var stepSum float64
	var stepCount int
	for i := range sorted {
		for _, param := range models.AllParameters {
			if v, ok := sorted[i].Value(param); ok {
				s.Latest[param] = v
			}
		}
		if v, ok := sorted[i].Value(models.ParamSteps); ok {
			stepSum += v
			stepCount++
		}
	}

	if stepCount > 0 {
		s.HasSteps = true
		s.MeanSteps = stepSum / float64(stepCount)
	}
	return s
}

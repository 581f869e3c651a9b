// ABOUTME: WearableSample model for device-derived time series data.
// ABOUTME: Samples are sparse; absent metrics are omitted, not zero-filled.
package models

import "time"

// Parameter names a wearable health metric. These are the only metrics
// the ingestion pipeline maps input columns onto.
type Parameter string

const (
	ParamBloodGlucose Parameter = "blood_glucose"
	ParamSystolicBP   Parameter = "systolic_bp"
	ParamDiastolicBP  Parameter = "diastolic_bp"
	ParamHeartRate    Parameter = "heart_rate"
	ParamSteps        Parameter = "steps"
	ParamSleep        Parameter = "sleep"
	ParamCalories     Parameter = "calories"
	ParamOxygenLevel  Parameter = "oxygen_level"
)

// AllParameters lists the wearable parameters in their canonical order.
// Column auto-mapping iterates in this order, so it is load-bearing for
// tie-breaking.
var AllParameters = []Parameter{
	ParamBloodGlucose, ParamSystolicBP, ParamDiastolicBP, ParamHeartRate,
	ParamSteps, ParamSleep, ParamCalories, ParamOxygenLevel,
}

// ParameterUnits maps parameters to their display units.
var ParameterUnits = map[Parameter]string{
	ParamBloodGlucose: "mg/dL",
	ParamSystolicBP:   "mmHg",
	ParamDiastolicBP:  "mmHg",
	ParamHeartRate:    "bpm",
	ParamSteps:        "steps",
	ParamSleep:        "hours",
	ParamCalories:     "kcal",
	ParamOxygenLevel:  "%",
}

// WearableSample is a single timestamped reading from a wearable device.
// Any subset of the metrics may be present; a nil field means the device
// did not report that metric, which is distinct from reporting zero.
type WearableSample struct {
	Timestamp    time.Time `json:"timestamp"`
	PatientID    string    `json:"patient_id"`
	BloodGlucose *float64  `json:"blood_glucose,omitempty"`
	SystolicBP   *float64  `json:"systolic_bp,omitempty"`
	DiastolicBP  *float64  `json:"diastolic_bp,omitempty"`
	HeartRate    *float64  `json:"heart_rate,omitempty"`
	Steps        *float64  `json:"steps,omitempty"`
	Sleep        *float64  `json:"sleep,omitempty"`
	Calories     *float64  `json:"calories,omitempty"`
	OxygenLevel  *float64  `json:"oxygen_level,omitempty"`
}

// Value returns the sample's reading for a parameter, if present.
func (s *WearableSample) Value(p Parameter) (float64, bool) {
	var v *float64
	switch p {
	case ParamBloodGlucose:
		v = s.BloodGlucose
	case ParamSystolicBP:
		v = s.SystolicBP
	case ParamDiastolicBP:
		v = s.DiastolicBP
	case ParamHeartRate:
		v = s.HeartRate
	case ParamSteps:
		v = s.Steps
	case ParamSleep:
		v = s.Sleep
	case ParamCalories:
		v = s.Calories
	case ParamOxygenLevel:
		v = s.OxygenLevel
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SetValue records a reading for a parameter on the sample. Unknown
// parameters are ignored.
func (s *WearableSample) SetValue(p Parameter, value float64) {
	v := value
	switch p {
	case ParamBloodGlucose:
		s.BloodGlucose = &v
	case ParamSystolicBP:
		s.SystolicBP = &v
	case ParamDiastolicBP:
		s.DiastolicBP = &v
	case ParamHeartRate:
		s.HeartRate = &v
	case ParamSteps:
		s.Steps = &v
	case ParamSleep:
		s.Sleep = &v
	case ParamCalories:
		s.Calories = &v
	case ParamOxygenLevel:
		s.OxygenLevel = &v
	}
}

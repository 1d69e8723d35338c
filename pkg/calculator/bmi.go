package calculator

import (
	"github.com/iwvelando/finance-calculator/pkg/constants"
)

// BMICategory is a WHO weight classification.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

// Tag returns the lowercase tag used for presentation.
func (c BMICategory) Tag() string {
	switch c {
	case Underweight:
		return "underweight"
	case Normal:
		return "normal"
	case Overweight:
		return "overweight"
	case Obese:
		return "obese"
	}
	return ""
}

// BMIQuery holds metric body measurements.
type BMIQuery struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

// BMIResult holds a body mass index and its classification.
type BMIResult struct {
	BMI         float64     `json:"bmi"`
	Category    BMICategory `json:"category"`
	CategoryTag string      `json:"categoryTag"`
}

// BMI computes the index for the query.
func (q BMIQuery) BMI() BMIResult {
	return ComputeBMI(q.WeightKg, q.HeightCm)
}

// ImperialToMetric converts pounds and inches to kilograms and centimetres.
func ImperialToMetric(weightLb, heightIn float64) (weightKg, heightCm float64) {
	return weightLb * constants.KilogramsPerPound, heightIn * constants.CentimetresPerInch
}

// ComputeBMI calculates weight / height^2 with height given in centimetres.
func ComputeBMI(weightKg, heightCm float64) BMIResult {
	heightM := heightCm / constants.CentimetresPerMetre
	bmi := weightKg / (heightM * heightM)
	category := CategorizeBMI(bmi)
	return BMIResult{
		BMI:         bmi,
		Category:    category,
		CategoryTag: category.Tag(),
	}
}

// CategorizeBMI classifies a BMI using half-open intervals; a value on a
// boundary belongs to the upper category.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < constants.BMIUnderweightLimit:
		return Underweight
	case bmi < constants.BMINormalLimit:
		return Normal
	case bmi < constants.BMIOverweightLimit:
		return Overweight
	default:
		return Obese
	}
}

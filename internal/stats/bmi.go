package stats

type BMIStatus string

const (
	Underweight BMIStatus = "Underweight"
	Normal      BMIStatus = "Normal"
	Overweight  BMIStatus = "Overweight"
	Obese       BMIStatus = "Obese"
)

// TargetBMINormal is the objective used for the desired weight, just under the Overweight band.
const TargetBMINormal = 24.9

const (
	underweightUpperBound = 18.5
	normalUpperBound      = 25.0
	overweightUpperBound  = 30.0
)

// BMICalculator works on a single weight (kg) and height (m) reading.
// A zero height makes the BMI not computable, reported as 0.
type BMICalculator struct {
	weight float64
	height float64
}

func NewBMICalculator(weight, height float64) BMICalculator {
	return BMICalculator{
		weight: weight,
		height: height,
	}
}

func (c BMICalculator) BMI() float64 {
	if c.height == 0 {
		return 0
	}
	return c.weight / (c.height * c.height)
}

// Status classifies the BMI; each bound is exclusive, so a value equal to a
// bound falls into the next band.
func (c BMICalculator) Status() BMIStatus {
	bmi := c.BMI()
	switch {
	case bmi < underweightUpperBound:
		return Underweight
	case bmi < normalUpperBound:
		return Normal
	case bmi < overweightUpperBound:
		return Overweight
	default:
		return Obese
	}
}

// DesiredWeight is the weight at which the same height yields targetBMI.
func (c BMICalculator) DesiredWeight(targetBMI float64) float64 {
	return targetBMI * c.height * c.height
}

package weighing

import "time"

type Weight struct {
	ID           int64     `json:"id"`
	UserNickname string    `json:"usernickname"`
	Weight       float64   `json:"weight"`
	WeighingDate time.Time `json:"weighing_date"`
	CreatedAt    time.Time `json:"creation_datetime"`
}

// Patch carries an update: nil fields are left untouched.
type Patch struct {
	ID           int64
	Weight       *float64
	WeighingDate *time.Time
}

func (p Patch) Apply(w *Weight) {
	if p.Weight != nil {
		w.Weight = *p.Weight
	}
	if p.WeighingDate != nil {
		w.WeighingDate = *p.WeighingDate
	}
}

// Weights returns the bare values, in the order given.
func Weights(list []Weight) []float64 {
	weights := make([]float64, 0, len(list))
	for _, w := range list {
		weights = append(weights, w.Weight)
	}
	return weights
}

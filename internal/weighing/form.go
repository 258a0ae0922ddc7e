package weighing

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/eridanus/internal/format"
)

type Form struct {
	WeighingDate string
	Weight       string

	Errors map[string]string
}

func NewForm(now time.Time) Form {
	return Form{WeighingDate: format.FormatDate(now)}
}

func FormFromRequest(r *http.Request) Form {
	return Form{
		WeighingDate: strings.TrimSpace(r.PostFormValue("weighing_date")),
		Weight:       strings.TrimSpace(r.PostFormValue("weight")),
	}
}

func FormFromWeight(w Weight) Form {
	return Form{
		WeighingDate: format.FormatDate(w.WeighingDate),
		Weight:       strconv.FormatFloat(w.Weight, 'f', -1, 64),
	}
}

func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

func (f *Form) validate() (date time.Time, weight float64, ok bool) {
	f.Errors = make(map[string]string)

	if f.WeighingDate == "" {
		f.Errors["weighing_date"] = "Date is required."
	} else if d, err := format.ToDate(f.WeighingDate, format.DateLayout); err != nil {
		f.Errors["weighing_date"] = "Date must look like 2024-03-17."
	} else {
		date = d
	}

	if f.Weight == "" {
		f.Errors["weight"] = "Weight is required."
	} else if w, err := format.ToFloat(f.Weight); err != nil || w <= 0 {
		f.Errors["weight"] = "Weight must be a positive number."
	} else {
		weight = w
	}

	return date, weight, f.Valid()
}

func (f *Form) Weighing(nickname string) (Weight, bool) {
	date, weight, ok := f.validate()
	if !ok {
		return Weight{}, false
	}
	return Weight{
		UserNickname: nickname,
		Weight:       weight,
		WeighingDate: date,
	}, true
}

func (f *Form) Patch(id int64) (Patch, bool) {
	date, weight, ok := f.validate()
	if !ok {
		return Patch{}, false
	}
	return Patch{
		ID:           id,
		Weight:       &weight,
		WeighingDate: &date,
	}, true
}

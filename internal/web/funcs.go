package web

import (
	"html/template"
	"strconv"
	"time"

	"github.com/2beens/eridanus/internal/format"
)

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return format.FormatDate(t)
	},
	"clock":    format.FormatTime,
	"num":      formatNumber,
	"optint":   optionalInt,
	"optfloat": optionalFloat,
	"deref":    derefTime,
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func optionalInt(i *int) string {
	if i == nil {
		return "-"
	}
	return strconv.Itoa(*i)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return formatNumber(*f)
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

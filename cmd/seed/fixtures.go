package main

import (
	"math"
	"time"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/format"
	"github.com/2beens/eridanus/internal/stats"
	"github.com/2beens/eridanus/internal/weighing"

	"github.com/brianvoe/gofakeit/v6"
)

// fakeActivities returns n records of the kind spread over the days before now.
// Every fifth run comes without a stored speed, the way records made before
// speed was tracked look.
func fakeActivities(faker *gofakeit.Faker, kind activities.Kind, nickname string, n int, now time.Time) []activities.Activity {
	list := make([]activities.Activity, 0, n)
	for i := 0; i < n; i++ {
		date := format.DateOf(now.AddDate(0, 0, -faker.Number(0, 365)))
		activity := activities.Activity{
			Kind:         kind,
			UserNickname: nickname,
			Date:         date,
			Time:         time.Date(1970, time.January, 1, faker.Number(6, 21), faker.Number(0, 59), 0, 0, time.UTC),
			Notes:        faker.Sentence(faker.Number(1, 6)),
		}
		if faker.Number(0, 3) > 0 {
			calories := faker.Number(50, 700)
			activity.Calories = &calories
		}

		if kind.Counted() {
			duration := faker.Number(2, 20)
			count := faker.Number(10, 120)
			activity.Duration = &duration
			activity.Count = &count
			list = append(list, activity)
			continue
		}

		duration := faker.Number(20, 90)
		distance := round2(faker.Float64Range(3, 21))
		activity.Duration = &duration
		activity.Run = &activities.RunDetails{Distance: distance}
		if i%5 != 0 {
			if speed, ok := stats.DeriveSpeed(distance, &duration); ok {
				speed = round2(speed)
				activity.Run.Speed = &speed
			}
		}
		list = append(list, activity)
	}
	return list
}

// fakeWeighings returns one weighing a week going back from now, drifting around start.
func fakeWeighings(faker *gofakeit.Faker, nickname string, n int, start float64, now time.Time) []weighing.Weight {
	list := make([]weighing.Weight, 0, n)
	weight := start
	for i := 0; i < n; i++ {
		weight = math.Max(40, weight+faker.Float64Range(-0.8, 0.8))
		list = append(list, weighing.Weight{
			UserNickname: nickname,
			Weight:       round2(weight),
			WeighingDate: format.DateOf(now.AddDate(0, 0, -7*i)),
		})
	}
	return list
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

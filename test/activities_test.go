//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (s *IntegrationTestSuite) TestUnauthorized() {
	for _, email := range []string{"", "mallory@example.com"} {
		resp := doRequest(context.Background(), s.T(), http.MethodGet, "/dashboard/", email, nil)
		s.Equal(http.StatusUnauthorized, resp.status)
		s.Equal("You're not authorized to use this website", resp.body)
	}
}

func (s *IntegrationTestSuite) TestUnknownRoute() {
	resp := s.get("/no/such/page")
	s.Equal(http.StatusNotFound, resp.status)
	s.Contains(resp.body, "Sorry, nothing at this URL.")

	resp = s.get("/activities/swimming/")
	s.Equal(http.StatusNotFound, resp.status)
}

func (s *IntegrationTestSuite) TestCountedActivityLifecycle() {
	resp := s.post("/activities/pushups/create/", url.Values{
		"activity_date": {"2024-03-15"},
		"activity_time": {"07:15"},
		"count":         {"40"},
		"notes":         {"before breakfast"},
	})
	s.Require().Equal(http.StatusFound, resp.status)
	s.Equal("/activities/pushups/", resp.header.Get("Location"))

	var id int64
	s.Require().NoError(s.DB.QueryRow("SELECT id FROM activity WHERE kind = 'pushups'").Scan(&id))

	resp = s.get("/activities/pushups/list/")
	s.Require().Equal(http.StatusOK, resp.status)
	s.Contains(resp.body, "before breakfast")

	resp = s.post(fmt.Sprintf("/activities/pushups/edit/%d/", id), url.Values{
		"activity_date": {"2024-03-15"},
		"activity_time": {"07:15"},
		"count":         {"55"},
	})
	s.Require().Equal(http.StatusFound, resp.status)

	var count int
	s.Require().NoError(s.DB.QueryRow("SELECT count FROM activity WHERE id = $1", id).Scan(&count))
	s.Equal(55, count)

	// the same record is not reachable under another kind
	resp = s.get(fmt.Sprintf("/activities/crunches/edit/%d/", id))
	s.Equal(http.StatusNotFound, resp.status)

	resp = s.post(fmt.Sprintf("/activities/pushups/%d/delete/", id), nil)
	s.Equal(http.StatusFound, resp.status)
	resp = s.post(fmt.Sprintf("/activities/pushups/%d/delete/", id), nil)
	s.Equal(http.StatusFound, resp.status)

	var left int
	s.Require().NoError(s.DB.QueryRow("SELECT COUNT(*) FROM activity").Scan(&left))
	s.Zero(left)
}

func (s *IntegrationTestSuite) TestRunsAndDashboard() {
	for _, run := range []url.Values{
		{"activity_date": {"2024-03-10"}, "activity_time": {"18:00"}, "duration": {"60"}, "distance": {"10"}},
		{"activity_date": {"2024-03-15"}, "activity_time": {"18:30"}, "duration": {"30"}, "distance": {"6"}, "calories": {"300"}},
	} {
		resp := s.post("/activities/running/create/", run)
		s.Require().Equal(http.StatusFound, resp.status)
	}

	resp := s.post("/activities/running/create/", url.Values{
		"activity_date": {"2024-03-16"}, "activity_time": {"18:30"}, "distance": {"6"},
	})
	s.Equal(http.StatusBadRequest, resp.status)

	resp = s.post("/weighings/create/", url.Values{"weighing_date": {"2024-03-16"}, "weight": {"84"}})
	s.Require().Equal(http.StatusFound, resp.status)

	resp = s.get("/dashboard/")
	s.Require().Equal(http.StatusOK, resp.status)
	s.Contains(resp.body, "2 runs")
	s.Contains(resp.body, "Overweight")

	resp = s.get("/activities/running/")
	s.Require().Equal(http.StatusOK, resp.status)
	s.Contains(resp.body, "Records")
	s.Contains(resp.body, "12.00")

	// cached dashboard must reflect new records
	resp = s.post("/weighings/create/", url.Values{"weighing_date": {"2024-03-17"}, "weight": {"80"}})
	s.Require().Equal(http.StatusFound, resp.status)
	resp = s.get("/dashboard/")
	s.Contains(resp.body, "Normal")
}

//go:build integration_test || all_tests

package test

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
)

func (s *IntegrationTestSuite) TestImportExport() {
	s.writeImportFile("2024-03", "weight.csv", "usernickname,weight,creation_datetime\r\n"+
		"someone,84.2,2024-03-16 07:30:00\r\n"+
		"someone,85,2024-03-01 21:10:00.250000\r\n")
	s.writeImportFile("2024-03", "run.csv", "usernickname,activity_date,activity_time,duration,distance,speed,calories,notes,creation_datetime\r\n"+
		"someone,2024-03-15,18:30:00,30,6,,300,evening,2024-03-15 19:00:00\r\n")

	resp := s.get("/admin/import/2024-03")
	s.Require().Equal(http.StatusOK, resp.status, resp.body)
	s.Contains(resp.body, "imported: 2")
	s.Contains(resp.body, "imported: 1")

	var owner string
	var speed float64
	s.Require().NoError(s.DB.QueryRow("SELECT user_nickname, speed FROM activity").Scan(&owner, &speed))
	s.Equal(testNickname, owner)
	s.InDelta(12.0, speed, 1e-9)

	resp = s.get("/admin/import/missing")
	s.Equal(http.StatusNotFound, resp.status)

	resp = s.get("/admin/export/csv/")
	s.Require().Equal(http.StatusOK, resp.status)
	s.Equal("application/zip", resp.header.Get("Content-Type"))
	s.Equal("no-cache", resp.header.Get("Cache-Control"))

	reader, err := zip.NewReader(bytes.NewReader([]byte(resp.body)), int64(len(resp.body)))
	s.Require().NoError(err)
	files := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		s.Require().NoError(err)
		content, err := io.ReadAll(rc)
		s.Require().NoError(err)
		_ = rc.Close()
		files[f.Name] = string(content)
	}
	s.Contains(files["weight.csv"], "jane,84.2,2024-03-16 07:30:00")
	s.Contains(files["weight.csv"], "jane,85,2024-03-01 21:10:00.25")
	s.Contains(files["run.csv"], "jane,2024-03-15,18:30:00,30,6,12,300,evening,2024-03-15 19:00:00")

	resp = s.get("/admin/export/json/")
	s.Equal(http.StatusBadRequest, resp.status)
}

func (s *IntegrationTestSuite) TestBackfillSpeed() {
	_, err := s.DB.Exec(`INSERT INTO activity
		(kind, user_nickname, activity_date, activity_time, duration, distance, created_at)
		VALUES ('running', $1, '2024-03-01', '07:00:00', 45, 9, now())`, testNickname)
	s.Require().NoError(err)

	resp := s.post("/admin/backfill-speed/", nil)
	s.Require().Equal(http.StatusFound, resp.status)
	s.Equal("/admin/", resp.header.Get("Location"))

	var speed float64
	s.Require().NoError(s.DB.QueryRow("SELECT speed FROM activity").Scan(&speed))
	s.InDelta(12.0, speed, 1e-9)
}

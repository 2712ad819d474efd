package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/mkovacc/liftboard/internal/records"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) request(
	ctx context.Context,
	t *testing.T,
	method, path, token string,
	body any,
) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-LIFT-TOKEN", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var decoded T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func (s *IntegrationTestSuite) newMember(ctx context.Context, t *testing.T, displayName, gender string) registeredMember {
	t.Helper()
	member := registerAndLogin(ctx, t, gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))

	resp := s.request(ctx, t, "POST", "/profile", member.Token, map[string]string{
		"displayName": displayName,
		"gender":      gender,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	return member
}

func (s *IntegrationTestSuite) TestRecords_saveAndReadBack() {
	t := s.T()
	ctx := context.Background()

	member := s.newMember(ctx, t, "Boris", "male")

	// 2025-09-01 is a monday: back squat day
	resp := s.request(ctx, t, "POST", "/records", member.Token, map[string]any{
		"date":  "2025-09-01",
		"value": 225.5,
		"notes": "new pr",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decodeBody[records.Entry](t, resp)
	require.NotZero(t, saved.ID)
	require.Equal(t, "Back Squat", saved.MovementName)
	require.Equal(t, "lbs", saved.Unit)
	require.Equal(t, "Boris", saved.OwnerName)

	// same member, same day: the second save replaces the first
	resp = s.request(ctx, t, "POST", "/records", member.Token, map[string]any{
		"date":  "2025-09-01",
		"value": 230.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	replaced := decodeBody[records.Entry](t, resp)
	require.Equal(t, saved.ID, replaced.ID)
	require.Equal(t, 230.0, replaced.Value)

	resp = s.request(ctx, t, "GET", "/records/day/2025-09-01", member.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	forDay := decodeBody[records.Entry](t, resp)
	require.Equal(t, 230.0, forDay.Value)

	// an off-schedule day rejects saves
	resp = s.request(ctx, t, "POST", "/records", member.Token, map[string]any{
		"date":  "2024-01-01",
		"value": 100.0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	// a non positive value rejects saves
	resp = s.request(ctx, t, "POST", "/records", member.Token, map[string]any{
		"date":  "2025-09-01",
		"value": -5.0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestRecords_leaderboardAndSeries() {
	t := s.T()
	ctx := context.Background()

	ana := s.newMember(ctx, t, "Ana E2E", "female")
	boris := s.newMember(ctx, t, "Boris E2E", "male")

	// deadlift tuesdays across two weeks
	for day, value := range map[string]float64{
		"2025-09-02": 315,
		"2025-09-09": 325,
	} {
		resp := s.request(ctx, t, "POST", "/records", boris.Token, map[string]any{
			"date": day, "value": value,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	}
	resp := s.request(ctx, t, "POST", "/records", ana.Token, map[string]any{
		"date": "2025-09-02", "value": 265.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	// leaderboards are public, no token needed
	resp = s.request(ctx, t, "GET", "/records/movement/"+url.PathEscape("Deadlift")+"/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	board := decodeBody[struct {
		MovementName  string `json:"movementName"`
		LowerIsBetter bool   `json:"lowerIsBetter"`
		Men           []struct {
			Person string  `json:"person"`
			Value  float64 `json:"value"`
		} `json:"men"`
		Women []struct {
			Person string  `json:"person"`
			Value  float64 `json:"value"`
		} `json:"women"`
	}](t, resp)

	require.Equal(t, "Deadlift", board.MovementName)
	require.False(t, board.LowerIsBetter)

	foundBoris := false
	for _, row := range board.Men {
		if row.Person == "Boris E2E" {
			foundBoris = true
			// deduplicated to his best of the two entries
			require.Equal(t, 325.0, row.Value)
		}
		require.NotEqual(t, "Ana E2E", row.Person)
	}
	require.True(t, foundBoris)

	foundAna := false
	for _, row := range board.Women {
		if row.Person == "Ana E2E" {
			foundAna = true
			require.Equal(t, 265.0, row.Value)
		}
	}
	require.True(t, foundAna)

	// the series is owner scoped and needs a session
	seriesPath := fmt.Sprintf(
		"/records/movement/%s/series?from=2025-09-01&to=2025-09-30",
		url.PathEscape("Deadlift"),
	)
	resp = s.request(ctx, t, "GET", seriesPath, boris.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	series := decodeBody[struct {
		Points []struct {
			Date    string  `json:"date"`
			Value   float64 `json:"value"`
			Display string  `json:"display"`
		} `json:"points"`
	}](t, resp)

	require.Len(t, series.Points, 2)
	require.Equal(t, "2025-09-02", series.Points[0].Date)
	require.Equal(t, 315.0, series.Points[0].Value)
	require.Equal(t, "2025-09-09", series.Points[1].Date)
	require.Equal(t, "325", series.Points[1].Display)

	resp = s.request(ctx, t, "GET", seriesPath, "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestRecords_deleteOwnEntriesOnly() {
	t := s.T()
	ctx := context.Background()

	owner := s.newMember(ctx, t, "Owner Del", "male")
	intruder := s.newMember(ctx, t, "Intruder Del", "male")

	resp := s.request(ctx, t, "POST", "/records", owner.Token, map[string]any{
		"date": "2025-09-04", "value": 200.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decodeBody[records.Entry](t, resp)

	deletePath := fmt.Sprintf("/records/%d", saved.ID)

	resp = s.request(ctx, t, "DELETE", deletePath, intruder.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "DELETE", deletePath, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "GET", "/records/day/2025-09-04", owner.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

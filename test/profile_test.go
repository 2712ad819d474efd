package test

import (
	"context"
	"net/http"

	"github.com/mkovacc/liftboard/internal/profiles"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProfile_upsertAndGet() {
	t := s.T()
	ctx := context.Background()

	member := registerAndLogin(ctx, t, gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))

	resp := s.request(ctx, t, "GET", "/profile", member.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	displayName := gofakeit.Name()
	resp = s.request(ctx, t, "POST", "/profile", member.Token, map[string]string{
		"displayName": displayName,
		"gender":      "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decodeBody[profiles.Profile](t, resp)
	require.Equal(t, member.OwnerID, saved.OwnerID)
	require.Equal(t, displayName, saved.DisplayName)
	require.Equal(t, "female", saved.Gender)

	resp = s.request(ctx, t, "GET", "/profile", member.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[profiles.Profile](t, resp)
	require.Equal(t, displayName, fetched.DisplayName)

	// updates replace the stored profile
	resp = s.request(ctx, t, "POST", "/profile", member.Token, map[string]string{
		"displayName": displayName,
		"gender":      "male",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "GET", "/profile", member.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[profiles.Profile](t, resp)
	require.Equal(t, "male", updated.Gender)

	resp = s.request(ctx, t, "POST", "/profile", member.Token, map[string]string{
		"displayName": displayName,
		"gender":      "martian",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "GET", "/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

package test

import (
	"context"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin_wrongCredentials() {
	t := s.T()
	ctx := context.Background()

	member := registerAndLogin(ctx, t, gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))

	resp := s.request(ctx, t, "POST", "/a/login", "", map[string]string{
		"kind":     "password",
		"username": member.Username,
		"password": "definitely-not-it",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "POST", "/a/login", "", map[string]string{
		"kind":     "password",
		"username": "no-such-member",
		"password": member.Password,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "POST", "/a/login", "", map[string]string{
		"kind": "carrier-pigeon",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestLogin_logoutClosesSession() {
	t := s.T()
	ctx := context.Background()

	member := registerAndLogin(ctx, t, gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))

	resp := s.request(ctx, t, "GET", "/profile", member.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "GET", "/a/logout", member.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	// the token is dead now
	resp = s.request(ctx, t, "GET", "/profile", member.Token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "GET", "/a/logout", member.Token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestLogin_usernameTaken() {
	t := s.T()
	ctx := context.Background()

	member := registerAndLogin(ctx, t, gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))

	resp := s.request(ctx, t, "POST", "/a/register", "", map[string]string{
		"username": member.Username,
		"password": "another-pass-123",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.request(ctx, t, "POST", "/a/register", "", map[string]string{
		"username": gofakeit.Username(),
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestLogin_exchangeCode() {
	t := s.T()
	ctx := context.Background()

	member := registerAndLogin(ctx, t, gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12))

	resp := s.request(ctx, t, "POST", "/a/code", member.Token, map[string]string{
		"kind": "exchange-code",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	issued := decodeBody[struct {
		Code string `json:"code"`
	}](t, resp)
	require.NotEmpty(t, issued.Code)

	// the code opens a second session for the same owner
	resp = s.request(ctx, t, "POST", "/a/login", "", map[string]string{
		"kind": "exchange-code",
		"code": issued.Code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	secondSession := decodeBody[loginResponse](t, resp)
	require.NotEmpty(t, secondSession.Token)
	require.NotEqual(t, member.Token, secondSession.Token)
	require.Equal(t, member.OwnerID, secondSession.OwnerID)

	// single use: a second redemption fails
	resp = s.request(ctx, t, "POST", "/a/login", "", map[string]string{
		"kind": "exchange-code",
		"code": issued.Code,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

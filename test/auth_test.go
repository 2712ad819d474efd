package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type registeredMember struct {
	Username string
	Password string
	OwnerID  string
	Token    string
}

type loginResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
}

// registerAndLogin creates a fresh account and opens a session for it.
func registerAndLogin(ctx context.Context, t *testing.T, username, password string) registeredMember {
	t.Helper()

	registerReqJson, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("%s/a/register", serverEndpoint), bytes.NewBuffer(registerReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var registerResp struct {
		OwnerID string `json:"ownerId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registerResp))
	require.NoError(t, resp.Body.Close())
	require.NotEmpty(t, registerResp.OwnerID)

	token, ownerID := doLogin(ctx, t, username, password)
	require.Equal(t, registerResp.OwnerID, ownerID)

	return registeredMember{
		Username: username,
		Password: password,
		OwnerID:  ownerID,
		Token:    token,
	}
}

func doLogin(ctx context.Context, t *testing.T, username, password string) (token, ownerID string) {
	t.Helper()

	loginReqJson, err := json.Marshal(map[string]string{
		"kind":     "password",
		"username": username,
		"password": password,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var loginResp loginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token, loginResp.OwnerID
}

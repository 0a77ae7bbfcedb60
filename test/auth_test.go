package test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestAuthCheck() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doRequest := func(t *testing.T, setHeaders func(req *http.Request)) *http.Response {
		req, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/workouts/list/page/1/size/10", serverEndpoint),
			nil,
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		if setHeaders != nil {
			setHeaders(req)
		}

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("no token", func(t *testing.T) {
		resp := doRequest(t, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "no can do", strings.TrimSpace(string(respBytes)))
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := doRequest(t, func(req *http.Request) {
			req.Header.Set("X-REPREADY-TOKEN", "made-up-token")
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid session token", func(t *testing.T) {
		token := doLogin(ctx, t)
		resp := doRequest(t, func(req *http.Request) {
			req.Header.Set("X-REPREADY-TOKEN", token)
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("mobile app secret", func(t *testing.T) {
		resp := doRequest(t, func(req *http.Request) {
			req.Header.Set("User-Agent", "RepReady/1.5.0 (iPhone)")
			req.Header.Set("Authorization", testMobileAppSecret)
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("mobile app user agent without secret", func(t *testing.T) {
		resp := doRequest(t, func(req *http.Request) {
			req.Header.Set("User-Agent", "RepReady/1.5.0 (iPhone)")
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("open paths need no token", func(t *testing.T) {
		for _, path := range []string{"/", "/version", "/quote/random"} {
			req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode, "path: %s", path)
			require.NoError(t, resp.Body.Close())
		}
	})

	t.Run("mcp checks its own secret", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/mcp", nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

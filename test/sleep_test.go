package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/repready/backend/internal/sleep"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllSleepLogs(ctx context.Context) {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM sleep_log")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) newSleepLogRequest(ctx context.Context, sleepLog sleep.Log) (*http.Response, *sleep.Log) {
	logJson, err := json.Marshal(sleepLog)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/sleep", serverEndpoint),
		bytes.NewReader(logJson),
	)
	require.NoError(s.T(), err)
	s.setMobileAppHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return resp, nil
	}

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedLog sleep.Log
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedLog))
	return resp, &addedLog
}

func (s *IntegrationTestSuite) TestSleepLogs() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllSleepLogs(ctx)

	lastNight := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	resp, addedLog := s.newSleepLogRequest(ctx, sleep.Log{
		Night:   lastNight,
		Quality: 80,
		Hours:   7.5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, addedLog)
	require.Greater(t, addedLog.ID, 0)
	assert.Equal(t, 80, addedLog.Quality)
	assert.Equal(t, 7.5, addedLog.Hours)
	assert.False(t, addedLog.CreatedAt.IsZero())

	t.Run("one log per night", func(t *testing.T) {
		resp, _ := s.newSleepLogRequest(ctx, sleep.Log{
			Night:   lastNight,
			Quality: 55,
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("quality out of range", func(t *testing.T) {
		resp, _ := s.newSleepLogRequest(ctx, sleep.Log{
			Night:   lastNight.AddDate(0, 0, -1),
			Quality: 150,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list", func(t *testing.T) {
		_, secondLog := s.newSleepLogRequest(ctx, sleep.Log{
			Night:   lastNight.AddDate(0, 0, -1),
			Quality: 60,
			Hours:   6,
		})
		require.NotNil(t, secondLog)

		req, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/sleep/list", serverEndpoint),
			nil,
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp sleep.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		assert.Equal(t, 2, listResp.Total)
		require.Len(t, listResp.Logs, 2)
		// most recent night first
		assert.Equal(t, addedLog.ID, listResp.Logs[0].ID)
		assert.Equal(t, secondLog.ID, listResp.Logs[1].ID)
	})

	t.Run("delete", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			ctx,
			"DELETE", fmt.Sprintf("%s/sleep/%d", serverEndpoint, addedLog.ID),
			nil,
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var deleteResp sleep.DeleteLogResponse
		require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
		assert.Equal(t, addedLog.ID, deleteResp.DeletedID)

		// deleting it again finds nothing
		req, err = http.NewRequestWithContext(
			ctx,
			"DELETE", fmt.Sprintf("%s/sleep/%d", serverEndpoint, addedLog.ID),
			nil,
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

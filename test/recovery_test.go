package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/repready/backend/internal/recovery"
	"github.com/repready/backend/internal/sleep"
	"github.com/repready/backend/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) getRecovery(ctx context.Context, t *testing.T, token, path string, out any) int {
	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-REPREADY-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode
	}

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBytes, out))
	return resp.StatusCode
}

func (s *IntegrationTestSuite) recompute(ctx context.Context, t *testing.T, token string) recovery.Snapshot {
	req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/recovery/recompute", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-REPREADY-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var snapshot recovery.Snapshot
	require.NoError(t, json.Unmarshal(respBytes, &snapshot))
	return snapshot
}

func chestStatus(t *testing.T, snapshot recovery.Snapshot) recovery.MuscleStatus {
	for _, status := range snapshot.Muscles {
		if status.Muscle == recovery.MuscleChest {
			return status
		}
	}
	t.Fatal("no chest status in snapshot")
	return recovery.MuscleStatus{}
}

func (s *IntegrationTestSuite) TestRecoveryFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllWorkouts(ctx)
	s.deleteAllSleepLogs(ctx)

	token := doLogin(ctx, t)

	// recompute flushes out anything cached from previous tests
	baseline := s.recompute(ctx, t, token)
	assert.Equal(t, 0, baseline.WorkoutCount)
	assert.Len(t, baseline.Muscles, 11)
	for _, status := range baseline.Muscles {
		assert.Equal(t, float64(100), status.RecoveryPercentage, "muscle: %s", status.Muscle)
		assert.Equal(t, recovery.StatusRecovered, status.RecoveryStatus, "muscle: %s", status.Muscle)
		assert.Nil(t, status.LastWorked, "muscle: %s", status.Muscle)
	}
	assert.Equal(t, 100, baseline.Readiness.Score)
	assert.Equal(t, 0, baseline.Consistency.Score)
	assert.Empty(t, baseline.Imbalances)

	// one heavy chest workout an hour ago
	added := s.newWorkoutRequest(ctx, workouts.Workout{
		PerformedAt: time.Now().Add(-time.Hour),
		Sets: []workouts.Set{
			{ExerciseID: "bench-press", Kilos: 100, Reps: 8},
			{ExerciseID: "bench-press", Kilos: 100, Reps: 8},
			{ExerciseID: "chest-fly", Kilos: 20, Reps: 12},
		},
	})

	var snapshot recovery.Snapshot
	require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/snapshot", &snapshot))
	assert.Equal(t, 1, snapshot.WorkoutCount)

	chest := chestStatus(t, snapshot)
	assert.Less(t, chest.RecoveryPercentage, float64(100))
	assert.NotEqual(t, recovery.StatusRecovered, chest.RecoveryStatus)
	require.NotNil(t, chest.LastWorked)
	assert.GreaterOrEqual(t, chest.RecommendedRestDays, 1)
	assert.Greater(t, chest.WorkloadScore, float64(0))

	t.Run("single muscle", func(t *testing.T) {
		var status recovery.MuscleStatus
		require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/muscles?muscle=chest", &status))
		assert.Equal(t, recovery.MuscleChest, status.Muscle)
		assert.Less(t, status.RecoveryPercentage, float64(100))

		var unused recovery.MuscleStatus
		assert.Equal(t, http.StatusNotFound, s.getRecovery(ctx, t, token, "/recovery/muscles?muscle=wings", &unused))
	})

	t.Run("readiness", func(t *testing.T) {
		var readiness recovery.Readiness
		require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/readiness", &readiness))
		assert.Less(t, readiness.Score, 100)
		assert.Greater(t, readiness.Score, 0)
		assert.NotEmpty(t, readiness.Status)
		assert.NotEmpty(t, readiness.Trend)
	})

	t.Run("consistency", func(t *testing.T) {
		var consistency recovery.Consistency
		require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/consistency", &consistency))
		assert.GreaterOrEqual(t, consistency.Score, 0)
		assert.LessOrEqual(t, consistency.Score, 100)
		assert.NotEmpty(t, consistency.Weeks)
	})

	t.Run("imbalances need history", func(t *testing.T) {
		var imbalancesResp recovery.ImbalancesResponse
		require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/imbalances", &imbalancesResp))
		assert.Empty(t, imbalancesResp.Imbalances)
	})

	t.Run("good sleep speeds up recovery", func(t *testing.T) {
		chestBefore := chest.RecoveryPercentage

		resp, _ := s.newSleepLogRequest(ctx, sleep.Log{
			Night:   time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour),
			Quality: 95,
			Hours:   8.5,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var withSleep recovery.Snapshot
		require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/snapshot", &withSleep))
		assert.Greater(t, chestStatus(t, withSleep).RecoveryPercentage, chestBefore)
	})

	t.Run("deleting the workout restores the baseline", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			ctx,
			"DELETE", fmt.Sprintf("%s/workouts/%d", serverEndpoint, added.ID),
			nil,
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		var restored recovery.Snapshot
		require.Equal(t, http.StatusOK, s.getRecovery(ctx, t, token, "/recovery/snapshot", &restored))
		assert.Equal(t, 0, restored.WorkoutCount)
		assert.Equal(t, float64(100), chestStatus(t, restored).RecoveryPercentage)
	})
}

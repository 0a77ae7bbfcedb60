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

	"github.com/repready/backend/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllWorkouts(ctx context.Context) {
	// workout_set rows go away via the cascade
	_, err := s.dbPool.Exec(ctx, "DELETE FROM workout")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) setMobileAppHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "RepReady/1.5.0 (iPhone)")
	req.Header.Set("Authorization", testMobileAppSecret)
	req.Header.Set("Content-Type", "application/json")
}

func (s *IntegrationTestSuite) newWorkoutRequest(
	ctx context.Context,
	workout workouts.Workout,
) workouts.AddWorkoutResponse {
	workoutJson, err := json.Marshal(workout)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/workouts", serverEndpoint),
		bytes.NewReader(workoutJson),
	)
	require.NoError(s.T(), err)
	s.setMobileAppHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedWorkout workouts.AddWorkoutResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedWorkout))

	return addedWorkout
}

func (s *IntegrationTestSuite) getWorkoutRequest(ctx context.Context, id int) workouts.Workout {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/%d", serverEndpoint, id),
		nil,
	)
	require.NoError(s.T(), err)
	s.setMobileAppHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var workout workouts.Workout
	require.NoError(s.T(), json.Unmarshal(respBytes, &workout))

	return workout
}

func benchWorkout(performedAt time.Time) workouts.Workout {
	return workouts.Workout{
		PerformedAt: performedAt,
		Note:        "bench day",
		Sets: []workouts.Set{
			{ExerciseID: "bench-press", Kilos: 80, Reps: 8},
			{ExerciseID: "bench-press", Kilos: 85, Reps: 5},
			{ExerciseID: "chest-fly", Kilos: 15, Reps: 12},
		},
	}
}

func (s *IntegrationTestSuite) TestWorkouts() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllWorkouts(ctx)

	performedAt := time.Now()
	added := s.newWorkoutRequest(ctx, benchWorkout(performedAt))
	require.Greater(t, added.ID, 0)
	assert.Len(t, added.Sets, 3)
	assert.GreaterOrEqual(t, added.CountToday, 1)
	for i, set := range added.Sets {
		assert.Equal(t, added.ID, set.WorkoutID)
		assert.Equal(t, i, set.SetIndex)
	}

	t.Run("duplicate submission is rejected", func(t *testing.T) {
		workoutJson, err := json.Marshal(benchWorkout(performedAt))
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(
			ctx,
			"POST", fmt.Sprintf("%s/workouts", serverEndpoint),
			bytes.NewReader(workoutJson),
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("workout without sets is rejected", func(t *testing.T) {
		workoutJson, err := json.Marshal(workouts.Workout{PerformedAt: performedAt})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(
			ctx,
			"POST", fmt.Sprintf("%s/workouts", serverEndpoint),
			bytes.NewReader(workoutJson),
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		workout := s.getWorkoutRequest(ctx, added.ID)
		assert.Equal(t, added.ID, workout.ID)
		assert.Equal(t, "bench day", workout.Note)
		assert.WithinDuration(t, performedAt, workout.PerformedAt, time.Second)
		require.Len(t, workout.Sets, 3)
		assert.Equal(t, "bench-press", workout.Sets[0].ExerciseID)
		assert.Equal(t, float64(80), workout.Sets[0].Kilos)
		assert.Equal(t, 8, workout.Sets[0].Reps)
	})

	t.Run("get, invalid id", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/workouts/nan", serverEndpoint),
			nil,
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list", func(t *testing.T) {
		// a second workout, on another day
		s.newWorkoutRequest(ctx, workouts.Workout{
			PerformedAt: performedAt.Add(-48 * time.Hour),
			Sets: []workouts.Set{
				{ExerciseID: "squat", Kilos: 100, Reps: 5},
			},
		})

		req, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/workouts/list/page/1/size/10", serverEndpoint),
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

		var listResp workouts.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		assert.Equal(t, 2, listResp.Total)
		require.Len(t, listResp.Workouts, 2)
		// most recent first
		assert.Equal(t, added.ID, listResp.Workouts[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		updated := added.Workout
		updated.Note = "bench day, felt heavy"
		updated.Sets[1].Kilos = 87.5
		updatedJson, err := json.Marshal(updated)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(
			ctx,
			"PUT", fmt.Sprintf("%s/workouts/%d", serverEndpoint, updated.ID),
			bytes.NewReader(updatedJson),
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(req)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var updateResp workouts.UpdateWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &updateResp))
		assert.Equal(t, updated.ID, updateResp.UpdatedID)

		stored := s.getWorkoutRequest(ctx, updated.ID)
		assert.Equal(t, "bench day, felt heavy", stored.Note)
		require.Len(t, stored.Sets, 3)
		assert.Equal(t, 87.5, stored.Sets[1].Kilos)
	})

	t.Run("delete, then re-add", func(t *testing.T) {
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
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var deleteResp workouts.DeleteWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
		assert.Equal(t, added.ID, deleteResp.DeletedID)

		getReq, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/workouts/%d", serverEndpoint, added.ID),
			nil,
		)
		require.NoError(t, err)
		s.setMobileAppHeaders(getReq)

		getResp, err := s.httpClient.Do(getReq)
		require.NoError(t, err)
		defer getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

		// the deleted workout no longer blocks the digest
		readded := s.newWorkoutRequest(ctx, benchWorkout(performedAt))
		assert.Greater(t, readded.ID, added.ID)
	})
}

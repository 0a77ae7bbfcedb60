package soundtrack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/internal/workouts"

	log "github.com/sirupsen/logrus"
	"github.com/zmb3/spotify/v2"
)

//go:generate mockgen -source=tracker.go -destination=tracker_mocks_test.go -package=soundtrack_test

type tracksRepo interface {
	Add(ctx context.Context, track Track) error
	GetLastPlayedTrackTime(ctx context.Context) (time.Time, error)
}

type workoutsLister interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

type spotifyClient interface {
	PlayerRecentlyPlayedOpt(ctx context.Context, opt *spotify.RecentlyPlayedOptions) ([]spotify.RecentlyPlayedItem, error)
}

const (
	// a workout row records only the session start; assume this length
	// when attaching tracks, since sets carry no wall-clock times
	assumedWorkoutDuration = 90 * time.Minute
	// tolerance on both sides of the workout window
	workoutWindowSlack = 30 * time.Minute

	recentlyPlayedLimit = 35
)

// Tracker periodically pulls the recently played tracks from Spotify and
// stores the ones that fall within a workout window.
type Tracker struct {
	tracks   tracksRepo
	workouts workoutsLister
	client   spotifyClient
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewTracker(
	tracks tracksRepo,
	workoutsRepo workoutsLister,
	client spotifyClient,
	interval time.Duration,
) *Tracker {
	return &Tracker{
		tracks:   tracks,
		workouts: workoutsRepo,
		client:   client,
		interval: interval,
	}
}

// SaveRecentlyPlayedTracks pulls the plays newer than the last stored one and
// saves those that overlap a workout window. Returns the number of saved tracks.
func (t *Tracker) SaveRecentlyPlayedTracks(ctx context.Context) (saved int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "soundtrack.tracker.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	lastPlayedTrackTime, err := t.tracks.GetLastPlayedTrackTime(ctx)
	if err != nil {
		return 0, fmt.Errorf("get last played track time: %w", err)
	}

	// skip the already stored play itself
	afterEpochMs := lastPlayedTrackTime.Add(5 * time.Second).Unix() * 1000
	items, err := t.client.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{
		Limit:        recentlyPlayedLimit,
		AfterEpochMs: afterEpochMs,
	})
	if err != nil {
		return 0, fmt.Errorf("get recently played tracks: %w", err)
	}

	if len(items) == 0 {
		log.Debugln("soundtrack tracker: no new tracks")
		return 0, nil
	}

	from, to := playWindow(items)
	history, err := t.workouts.ListAll(ctx, workouts.WorkoutParams{
		From: &from,
		To:   &to,
	})
	if err != nil {
		return 0, fmt.Errorf("list workouts: %w", err)
	}

	for _, item := range items {
		workoutID, ok := matchWorkout(history, item.PlayedAt)
		if !ok {
			log.Tracef("soundtrack tracker: [%s] played outside any workout, skipping", item.Track.Name)
			continue
		}
		track := NewTrackFromRecentlyPlayedItem(item)
		track.WorkoutID = workoutID
		if err := t.tracks.Add(ctx, track); err != nil {
			return saved, fmt.Errorf("add track: %w", err)
		}
		saved++
	}

	log.Debugf("soundtrack tracker: saved %d of %d recently played tracks", saved, len(items))
	return saved, nil
}

// playWindow returns the workout query window able to contain every
// workout whose session could overlap one of the given plays.
func playWindow(items []spotify.RecentlyPlayedItem) (from, to time.Time) {
	from, to = items[0].PlayedAt, items[0].PlayedAt
	for _, item := range items[1:] {
		if item.PlayedAt.Before(from) {
			from = item.PlayedAt
		}
		if item.PlayedAt.After(to) {
			to = item.PlayedAt
		}
	}
	return from.Add(-(assumedWorkoutDuration + workoutWindowSlack)), to.Add(workoutWindowSlack)
}

// matchWorkout finds the workout whose window contains playedAt. When
// windows overlap, the workout with the nearest start wins.
func matchWorkout(history []workouts.Workout, playedAt time.Time) (int, bool) {
	var bestID int
	var bestDistance time.Duration
	for _, w := range history {
		windowStart := w.PerformedAt.Add(-workoutWindowSlack)
		windowEnd := w.PerformedAt.Add(assumedWorkoutDuration + workoutWindowSlack)
		if playedAt.Before(windowStart) || playedAt.After(windowEnd) {
			continue
		}
		distance := playedAt.Sub(w.PerformedAt)
		if distance < 0 {
			distance = -distance
		}
		if bestID == 0 || distance < bestDistance {
			bestID = w.ID
			bestDistance = distance
		}
	}
	return bestID, bestID != 0
}

func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stopChan = make(chan struct{})
	t.doneChan = make(chan struct{})
	go t.run(t.stopChan, t.doneChan)
}

// Stop stops the periodic sync and waits for an in-flight one to finish.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stopChan)
	<-t.doneChan
}

func (t *Tracker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Tracker) Status() string {
	if t.IsRunning() {
		return "running"
	}
	return "stopped"
}

func (t *Tracker) run(stop, done chan struct{}) {
	defer close(done)

	ctx := context.Background()
	if _, err := t.SaveRecentlyPlayedTracks(ctx); err != nil {
		log.Errorf("soundtrack tracker: save recently played tracks: %s", err)
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := t.SaveRecentlyPlayedTracks(ctx); err != nil {
				log.Errorf("soundtrack tracker: save recently played tracks: %s", err)
			}
		}
	}
}

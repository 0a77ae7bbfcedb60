package soundtrack

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/internal/workouts"
	"github.com/repready/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

const (
	defaultListPageSize = 20
	maxListPageSize     = 100
)

type Handler struct {
	auth               *spotifyauth.Authenticator
	client             *spotify.Client
	tracker            *Tracker
	repo               *Repo
	workouts           *workouts.Repo
	trackerInterval    time.Duration
	randStateGenerator func() string
	state              string
}

func NewHandler(
	redirectURI string,
	spotifyClientID string,
	spotifyClientSecret string,
	randStateGenerator func() string,
	repo *Repo,
	workoutsRepo *workouts.Repo,
	trackerInterval time.Duration,
) *Handler {
	return &Handler{
		auth: spotifyauth.New(
			spotifyauth.WithRedirectURL(redirectURI),
			spotifyauth.WithScopes(spotifyauth.ScopeUserReadRecentlyPlayed),
			spotifyauth.WithClientID(spotifyClientID),
			spotifyauth.WithClientSecret(spotifyClientSecret),
		),
		randStateGenerator: randStateGenerator,
		repo:               repo,
		workouts:           workoutsRepo,
		trackerInterval:    trackerInterval,
	}
}

func GenerateStateString() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.authenticate")
	defer span.End()

	h.state = h.randStateGenerator()
	redirectURL := h.auth.AuthURL(h.state)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (h *Handler) AuthRedirect(w http.ResponseWriter, r *http.Request) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.authRedirect")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tok, err := h.auth.Token(ctx, h.state, r)
	if err != nil {
		http.Error(w, "failed to get token", http.StatusForbidden)
		log.Errorf("failed to get token: %v", err)
		return
	}
	if st := r.FormValue("state"); st != h.state {
		http.Error(w, "state mismatch", http.StatusForbidden)
		log.Errorf("state mismatch: %s != %s", st, h.state)
		return
	}

	// redirect to the main page
	http.Redirect(w, r, "/", http.StatusFound)

	// let the request finish, and we set the spotify client in a new goroutine
	go func() {
		var err error
		innerCtx, innerSpan := tracing.GlobalTracer.Start(
			context.WithoutCancel(ctx),
			"soundtrack.handler.authRedirect.setClient",
		)
		defer func() {
			tracing.EndSpanWithErrCheck(innerSpan, err)
		}()

		// use the token to get an authenticated client
		h.client = spotify.New(h.auth.Client(innerCtx, tok))

		u, err := h.client.CurrentUser(innerCtx)
		if err != nil {
			log.Errorf("failed to get current user: %s", err)
		} else {
			log.Debugf("authenticated as: %s", u.DisplayName)
		}

		if h.tracker != nil {
			h.tracker.Stop()
		}
		h.tracker = NewTracker(h.repo, h.workouts, h.client, h.trackerInterval)
		h.tracker.Start()
	}()
}

type TrackerStatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type SyncResponse struct {
	Status string `json:"status"`
	Saved  int    `json:"saved"`
}

type ListResponse struct {
	Tracks []Track `json:"tracks"`
	Total  int     `json:"total"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Errorf("soundtrack handler, marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, raw, statusCode)
}

// HandleSync pulls the recently played tracks once and attaches them to
// overlapping workouts. Spotify being unreachable or unauthenticated is
// reported as a bad gateway, never as corrupted workout data.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.sync")
	defer span.End()

	if h.tracker == nil {
		http.Error(w, "spotify not connected", http.StatusBadGateway)
		return
	}

	saved, err := h.tracker.SaveRecentlyPlayedTracks(ctx)
	if err != nil {
		log.Errorf("soundtrack sync: %s", err)
		http.Error(w, "soundtrack sync failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, SyncResponse{Status: "ok", Saved: saved})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.list")
	defer span.End()

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid <page> param", http.StatusBadRequest)
			return
		}
		page = parsed
	}
	size := defaultListPageSize
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		parsed, err := strconv.Atoi(sizeStr)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid <size> param", http.StatusBadRequest)
			return
		}
		size = parsed
	}
	if size > maxListPageSize {
		size = maxListPageSize
	}

	tracks, total, err := h.repo.List(ctx, page, size)
	if err != nil {
		log.Errorf("list soundtrack error: %s", err)
		http.Error(w, "failed to get tracks", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse{Tracks: tracks, Total: total})
}

// HandleForWorkout returns the soundtrack of a single workout.
func (h *Handler) HandleForWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.forWorkout")
	defer span.End()

	vars := mux.Vars(r)
	workoutID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	tracks, err := h.repo.ListForWorkout(ctx, workoutID)
	if err != nil {
		log.Errorf("list soundtrack for workout %d: %s", workoutID, err)
		http.Error(w, "failed to get tracks", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse{Tracks: tracks, Total: len(tracks)})
}

func (h *Handler) HandleTrackerStatus(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.trackerStatus")
	defer span.End()

	if h.tracker == nil {
		h.writeJSON(w, http.StatusOK, TrackerStatusResponse{Status: "stopped"})
		return
	}
	h.writeJSON(w, http.StatusOK, TrackerStatusResponse{Status: h.tracker.Status()})
}

func (h *Handler) HandleTrackerStart(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.trackerStart")
	defer span.End()

	if h.tracker == nil {
		h.writeJSON(w, http.StatusBadRequest, TrackerStatusResponse{
			Status:  "stopped",
			Message: "tracker not initialized, authenticate first",
		})
		return
	}
	h.tracker.Start()
	h.writeJSON(w, http.StatusOK, TrackerStatusResponse{Status: "running"})
}

// StopTracker stops the periodic sync if it is running. Used on shutdown.
func (h *Handler) StopTracker() {
	if h.tracker != nil {
		h.tracker.Stop()
	}
}

func (h *Handler) HandleTrackerStop(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "soundtrack.handler.trackerStop")
	defer span.End()

	if h.tracker == nil {
		h.writeJSON(w, http.StatusBadRequest, TrackerStatusResponse{
			Status:  "stopped",
			Message: "tracker not initialized",
		})
		return
	}
	h.tracker.Stop()
	h.writeJSON(w, http.StatusOK, TrackerStatusResponse{Status: "stopped"})
}

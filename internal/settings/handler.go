package settings

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=settings_test

type settingsRepo interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
}

// snapshotInvalidator drops the cached recovery snapshot; settings
// feed directly into the engine, so every update must invalidate.
type snapshotInvalidator interface {
	Invalidate()
}

type Handler struct {
	repo     settingsRepo
	snapshot snapshotInvalidator
}

func NewHandler(repo settingsRepo, snapshot snapshotInvalidator) *Handler {
	return &Handler{
		repo:     repo,
		snapshot: snapshot,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.get")
	defer span.End()

	s, err := handler.repo.Get(ctx)
	if err != nil {
		log.Errorf("failed to get settings: %s", err)
		http.Error(w, "failed to get settings", http.StatusInternalServerError)
		return
	}

	settingsJson, err := json.Marshal(s)
	if err != nil {
		log.Errorf("failed to marshal settings: %s", err)
		http.Error(w, "failed to get settings", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(settingsJson))
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var s Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		log.Tracef("update settings, unmarshal json params: %s", err)
		http.Error(w, "update settings failed", http.StatusBadRequest)
		return
	}

	if err := s.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.repo.Update(ctx, s)
	if err != nil {
		log.Errorf("failed to update settings: %s", err)
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}

	handler.snapshot.Invalidate()

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated settings: %s", err)
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}

	log.Debugf("settings updated: %s", updatedJson)

	pkg.WriteJSONResponseOK(w, string(updatedJson))
}

package recovery

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"
)

type MusclesResponse struct {
	Muscles     []MuscleStatus `json:"muscles"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

type ImbalancesResponse struct {
	Imbalances  []Imbalance `json:"imbalances"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.snapshot")
	defer span.End()

	snapshot, err := handler.service.Snapshot(ctx)
	if err != nil {
		log.Errorf("failed to get recovery snapshot: %s", err)
		http.Error(w, "failed to get recovery snapshot", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, snapshot)
}

// HandleMuscles returns all muscle statuses, or a single one when the
// muscle query parameter is set.
func (handler *Handler) HandleMuscles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.muscles")
	defer span.End()

	snapshot, err := handler.service.Snapshot(ctx)
	if err != nil {
		log.Errorf("failed to get recovery snapshot: %s", err)
		http.Error(w, "failed to get muscle statuses", http.StatusInternalServerError)
		return
	}

	if muscleParam := r.URL.Query().Get("muscle"); muscleParam != "" {
		muscle := Muscle(strings.ToLower(strings.TrimSpace(muscleParam)))
		for _, status := range snapshot.Muscles {
			if status.Muscle == muscle {
				handler.writeJSON(w, status)
				return
			}
		}
		http.Error(w, "muscle not found", http.StatusNotFound)
		return
	}

	handler.writeJSON(w, MusclesResponse{
		Muscles:     snapshot.Muscles,
		GeneratedAt: snapshot.GeneratedAt,
	})
}

func (handler *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.readiness")
	defer span.End()

	snapshot, err := handler.service.Snapshot(ctx)
	if err != nil {
		log.Errorf("failed to get recovery snapshot: %s", err)
		http.Error(w, "failed to get readiness", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, snapshot.Readiness)
}

func (handler *Handler) HandleConsistency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.consistency")
	defer span.End()

	snapshot, err := handler.service.Snapshot(ctx)
	if err != nil {
		log.Errorf("failed to get recovery snapshot: %s", err)
		http.Error(w, "failed to get consistency", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, snapshot.Consistency)
}

func (handler *Handler) HandleImbalances(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.imbalances")
	defer span.End()

	snapshot, err := handler.service.Snapshot(ctx)
	if err != nil {
		log.Errorf("failed to get recovery snapshot: %s", err)
		http.Error(w, "failed to get imbalances", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, ImbalancesResponse{
		Imbalances:  snapshot.Imbalances,
		GeneratedAt: snapshot.GeneratedAt,
	})
}

// HandleRecompute bypasses the snapshot cache. Rate-limited in the
// router so a misbehaving dashboard cannot hammer the engine.
func (handler *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.recompute")
	defer span.End()

	snapshot, err := handler.service.Recompute(ctx)
	if err != nil {
		log.Errorf("failed to recompute recovery snapshot: %s", err)
		http.Error(w, "failed to recompute recovery snapshot", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, snapshot)
}

func (handler *Handler) writeJSON(w http.ResponseWriter, payload any) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal recovery response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(payloadJson))
}

package sleep

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/repready/backend/internal/telemetry/metrics"
	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sleep_test

type sleepRepo interface {
	Add(ctx context.Context, l Log) (*Log, error)
	List(ctx context.Context, params LogParams) ([]Log, error)
	Delete(ctx context.Context, id int) error
}

// snapshotInvalidator drops the cached recovery snapshot; sleep quality
// shortens recovery windows, so mutations must invalidate.
type snapshotInvalidator interface {
	Invalidate()
}

type DeleteLogResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Logs  []Log `json:"logs"`
	Total int   `json:"total"`
}

type Handler struct {
	repo     sleepRepo
	snapshot snapshotInvalidator
	metrics  *metrics.Manager
}

func NewHandler(repo sleepRepo, snapshot snapshotInvalidator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		snapshot: snapshot,
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sleep.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var sleepLog Log
	if err := json.NewDecoder(r.Body).Decode(&sleepLog); err != nil {
		log.Tracef("add sleep log, unmarshal json params: %s", err)
		http.Error(w, "add sleep log failed", http.StatusBadRequest)
		return
	}

	if err := sleepLog.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	addedLog, err := handler.repo.Add(ctx, sleepLog)
	if err != nil {
		if errors.Is(err, ErrLogExists) {
			http.Error(w, "sleep log for that night already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add sleep log for %s: %s", sleepLog.Night.Format(time.DateOnly), err)
		http.Error(w, "error, failed to add sleep log", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSleepLogs.Inc()
	handler.snapshot.Invalidate()

	addedLogJson, err := json.Marshal(addedLog)
	if err != nil {
		log.Errorf("failed to marshal added sleep log: %s", err)
		http.Error(w, "error, failed to add sleep log", http.StatusInternalServerError)
		return
	}

	log.Debugf("new sleep log added: %d [night %s]", addedLog.ID, addedLog.Night.Format(time.DateOnly))
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedLogJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sleep.list")
	defer span.End()

	var params LogParams
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			http.Error(w, "invalid <from> param", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			http.Error(w, "invalid <to> param", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	logs, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("list sleep logs error: %s", err)
		http.Error(w, "failed to get sleep logs", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Logs:  logs,
		Total: len(logs),
	})
	if err != nil {
		log.Errorf("failed to marshal sleep logs: %s", err)
		http.Error(w, "failed to get sleep logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(listResponseJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sleep.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			http.Error(w, "sleep log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete sleep log %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.snapshot.Invalidate()

	deletedResponseJson, err := json.Marshal(DeleteLogResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete sleep log response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deletedResponseJson))
}

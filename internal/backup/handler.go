package backup

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleRun triggers one backup immediately.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalBackupTracer.Start(r.Context(), "backup.handler.run")
	defer span.End()

	res, err := h.service.Run(ctx, time.Now())
	if err != nil {
		log.Errorf("manual workout backup: %s", err)
		http.Error(w, "backup failed", http.StatusInternalServerError)
		return
	}

	raw, err := json.Marshal(res)
	if err != nil {
		log.Errorf("manual workout backup, marshal result: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, raw)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler отдает состояние сервиса для мониторинга
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health обрабатывает GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.WarnContext(r.Context(), "Health check failed", "error", err)
		RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

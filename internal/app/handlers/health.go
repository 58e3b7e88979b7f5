package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linemk/flower-delivery/internal/storage"
)

// HealthResponse ответ GET /api/health
type HealthResponse struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Database  string       `json:"database"`
	Mode      storage.Mode `json:"mode"`
}

// HealthHandler сообщает, в каком режиме работает хранилище
func HealthHandler(log *slog.Logger, mode storage.Mode, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	database := "Connected"
	if mode == storage.ModeDemo {
		database = "Demo Mode"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HealthHandler"
		logger := log.With(slog.String("op", op))

		resp := HealthResponse{
			Status:    "OK",
			Message:   "Flower Delivery API is running",
			Timestamp: now().UTC(),
			Database:  database,
			Mode:      mode,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := encode(w, resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

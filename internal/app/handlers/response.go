package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

// Response единый формат ответа API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int64 `json:"total,omitempty"`
	Page    int    `json:"page,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type errorDetailsKey struct{}

// ErrorDetails включает поле error с текстом внутренней ошибки в ответах.
// В prod выключено.
func ErrorDetails(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), errorDetailsKey{}, expose)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func exposeErrors(ctx context.Context) bool {
	expose, _ := ctx.Value(errorDetailsKey{}).(bool)
	return expose
}

// WriteJSON пишет ответ с заданным статусом
func WriteJSON(w http.ResponseWriter, log *slog.Logger, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := encode(w, resp); err != nil {
		log.Error("failed to encode response", slog.Any("error", err))
	}
}

func encode(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func respondData(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	WriteJSON(w, log, status, Response{Success: true, Data: data})
}

func respondList[T any](w http.ResponseWriter, log *slog.Logger, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	WriteJSON(w, log, http.StatusOK, Response{Success: true, Data: items, Count: &count})
}

// respondError пишет ошибку; текст err попадает в ответ только если это
// разрешено middleware ErrorDetails.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, message string, err error) {
	resp := Response{Message: message}
	if err != nil && exposeErrors(r.Context()) {
		resp.Error = err.Error()
	}
	WriteJSON(w, log, status, resp)
}

// queryFloat возвращает nil, если параметра нет или он не число
func queryFloat(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryBool: параметр есть - значение равно "true"
func queryBool(r *http.Request, key string) *bool {
	q := r.URL.Query()
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key) == "true"
	return &v
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

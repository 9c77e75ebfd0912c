package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	chatmodel "github.com/w-h-a/answerbot/chat"
	"github.com/w-h-a/answerbot/internal/service/answer"
	httpserver "github.com/w-h-a/answerbot/server/http"
)

// Replier is satisfied by *answerbot.Bot.
type Replier interface {
	Reply(ctx context.Context, history []chatmodel.Turn, overrides chatmodel.Overrides) (*chatmodel.Response, error)
}

type request struct {
	History   []chatmodel.Turn    `json:"history"`
	Overrides chatmodel.Overrides `json:"overrides"`
}

type chatHandler struct {
	bot Replier
}

// Routes registers POST /api/chat and GET /healthz.
func (h *chatHandler) Routes(r *mux.Router) {
	r.HandleFunc("/api/chat", h.Chat).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
}

func (h *chatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rsp, err := h.bot.Reply(ctx, req.History, req.Overrides)
	if err != nil {
		status := statusOf(err)
		id, _ := httpserver.RequestIDFrom(ctx)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "failed to answer chat", "request_id", id, "status", status, "error", err)
		} else {
			slog.InfoContext(ctx, "rejected chat", "request_id", id, "status", status, "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rsp)
}

func (h *chatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, answer.ErrInvalidConversation):
		return http.StatusBadRequest
	case errors.Is(err, answer.ErrCompletionCount), errors.Is(err, answer.ErrMalformedOutput):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

func NewHandler(bot Replier) *chatHandler {
	if bot == nil {
		panic("bot is required")
	}

	return &chatHandler{bot: bot}
}

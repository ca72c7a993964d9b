package advisor

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
)

const msgSessionNotFound = "Advisor session not found"

func Open(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.advisor"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("advisor service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("advisor service not available"))
			return
		}

		conv, err := handler.OpenAdvisor()
		if err != nil {
			logger.Error("failed to open advisor session", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("advisor service not available"))
			return
		}

		logger.Debug("advisor session opened", slog.String("session", conv.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(conv))
	}
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.advisor"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", id),
		)

		if handler == nil {
			logger.Error("advisor service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("advisor service not available"))
			return
		}

		conv, err := handler.AdvisorConversation(id)
		if err != nil {
			logger.Error("failed to get advisor session", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("advisor service not available"))
			return
		}
		if conv == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(msgSessionNotFound))
			return
		}

		render.JSON(w, r, response.Ok(conv))
	}
}

func Close(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.advisor"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", id),
		)

		if handler == nil {
			logger.Error("advisor service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("advisor service not available"))
			return
		}

		closed, err := handler.CloseAdvisor(id)
		if err != nil {
			logger.Error("failed to close advisor session", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("advisor service not available"))
			return
		}
		if !closed {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(msgSessionNotFound))
			return
		}

		logger.Debug("advisor session closed")
		render.JSON(w, r, response.Ok("Advisor session closed"))
	}
}

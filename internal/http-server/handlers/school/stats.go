package school

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
)

func Stats(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.school"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("school service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("school service not available"))
			return
		}

		stats, err := handler.Stats()
		if err != nil {
			logger.Error("failed to aggregate stats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to aggregate stats"))
			return
		}

		render.JSON(w, r, response.Ok(stats))
	}
}

package school

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
)

func GetSchool(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.school"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("id", id),
		)

		if handler == nil {
			logger.Error("school service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("school service not available"))
			return
		}

		school, err := handler.School(id)
		if err != nil {
			logger.Error("failed to get school", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to get school"))
			return
		}
		if school == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("School not found"))
			return
		}

		render.JSON(w, r, response.Ok(school))
	}
}

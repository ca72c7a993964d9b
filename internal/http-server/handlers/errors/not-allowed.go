package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
)

func NotAllowed(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.With(
			sl.Module("http.handlers.errors"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		).Debug("method not allowed", slog.String("method", r.Method), slog.String("path", r.URL.Path))

		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("Method not allowed"))
	}
}

package meta

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"netivim/internal/lib/api/response"
)

func Status(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler == nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("service not available"))
			return
		}
		render.JSON(w, r, response.Ok(handler.Status()))
	}
}

func Types(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler == nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("service not available"))
			return
		}
		render.JSON(w, r, response.Ok(handler.Types()))
	}
}

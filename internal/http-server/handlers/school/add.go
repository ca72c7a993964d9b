package school

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
	"netivim/internal/service/intake"
)

type FieldErrors struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

func AddSchool(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.school")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("school service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("school service not available"))
			return
		}

		var fields intake.Fields
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			logger.Debug("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		logger = logger.With(slog.String("name", fields.Name), slog.String("city", fields.City))

		school, err := handler.AddSchool(r.Context(), fields)
		if err != nil {
			var invalid *intake.ValidationError
			switch {
			case errors.As(err, &invalid):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Response{
					Data:    FieldErrors{Message: intake.MsgInvalid, Fields: invalid.Fields},
					Message: intake.MsgInvalid,
				})
			case errors.Is(err, intake.ErrInvalid):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(intake.MsgInvalid))
			case errors.Is(err, intake.ErrLocationNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(intake.MsgLocationNotFound))
			case errors.Is(err, intake.ErrGeocode):
				logger.Warn("geocoding failed", sl.Err(err))
				render.Status(r, http.StatusBadGateway)
				render.JSON(w, r, response.Error(intake.MsgGeocodeFailed))
			default:
				logger.Error("failed to add school", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Failed to add school"))
			}
			return
		}

		logger.Info("school added", slog.String("id", school.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(school))
	}
}

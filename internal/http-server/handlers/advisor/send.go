package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/catalog"
	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
	"netivim/internal/service/advisor"
)

// MessageRequest carries the user turn and the filter the browser is
// showing; the advisor only sees schools that pass it.
type MessageRequest struct {
	Text  string  `json:"text"`
	Types *string `json:"types,omitempty"`
	Query string  `json:"q"`
	Grade string  `json:"grade"`
}

func (m MessageRequest) criteria() (catalog.Criteria, error) {
	criteria := catalog.DefaultCriteria()
	if m.Types != nil {
		types, err := catalog.ParseTypes(*m.Types)
		if err != nil {
			return catalog.Criteria{}, err
		}
		criteria.Types = types
	}
	criteria.Query = m.Query

	grade, err := catalog.ParseGrade(m.Grade)
	if err != nil {
		return catalog.Criteria{}, err
	}
	criteria.Grade = grade
	return criteria, nil
}

func Send(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Debug("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		criteria, err := req.criteria()
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid filter: %v", err)))
			return
		}

		answer, err := handler.AskAdvisor(r.Context(), id, req.Text, criteria)
		if err != nil {
			switch {
			case errors.Is(err, advisor.ErrBusy):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("A message is already being answered"))
			case errors.Is(err, advisor.ErrEmpty):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Message text is required"))
			case errors.Is(err, advisor.ErrClosed):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(msgSessionNotFound))
			default:
				logger.Error("advisor send", sl.Err(err))
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("advisor service not available"))
			}
			return
		}
		if answer == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(msgSessionNotFound))
			return
		}

		render.JSON(w, r, response.Ok(answer))
	}
}

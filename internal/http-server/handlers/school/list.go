package school

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/entity"
	"netivim/internal/catalog"
	"netivim/internal/lib/api/response"
	"netivim/internal/lib/sl"
)

type ListResponse struct {
	Schools []entity.SchoolView `json:"schools"`
	Count   int                 `json:"count"`
	Total   int                 `json:"total"`
}

func ListSchools(log *slog.Logger, handler Core) http.HandlerFunc {
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

		criteria, err := CriteriaFromQuery(r)
		if err != nil {
			logger.Debug("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid filter: %v", err)))
			return
		}

		schools, total, err := handler.Schools(criteria)
		if err != nil {
			logger.Error("failed to list schools", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list schools: %v", err)))
			return
		}

		logger.Debug("schools listed", slog.Int("count", len(schools)))
		render.JSON(w, r, response.Ok(ListResponse{
			Schools: schools,
			Count:   len(schools),
			Total:   total,
		}))
	}
}

// CriteriaFromQuery reads types, q and grade. A missing types parameter
// selects every type; an empty one selects none.
func CriteriaFromQuery(r *http.Request) (catalog.Criteria, error) {
	query := r.URL.Query()
	criteria := catalog.DefaultCriteria()

	if _, ok := query["types"]; ok {
		types, err := catalog.ParseTypes(query.Get("types"))
		if err != nil {
			return catalog.Criteria{}, err
		}
		criteria.Types = types
	}
	criteria.Query = query.Get("q")

	grade, err := catalog.ParseGrade(query.Get("grade"))
	if err != nil {
		return catalog.Criteria{}, err
	}
	criteria.Grade = grade
	return criteria, nil
}

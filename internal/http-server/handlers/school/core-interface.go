package school

import (
	"context"

	"netivim/entity"
	"netivim/internal/catalog"
	"netivim/internal/service/intake"
)

type Core interface {
	Schools(criteria catalog.Criteria) ([]entity.SchoolView, int, error)
	School(id string) (*entity.SchoolView, error)
	Stats() (entity.Stats, error)
	AddSchool(ctx context.Context, fields intake.Fields) (entity.School, error)
}

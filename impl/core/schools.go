package core

import (
	"context"
	"errors"

	"netivim/entity"
	"netivim/internal/catalog"
	"netivim/internal/service/intake"
)

var ErrNotAvailable = errors.New("service not available")

func (c *Core) Schools(criteria catalog.Criteria) ([]entity.SchoolView, int, error) {
	if c.repo == nil {
		return nil, 0, ErrNotAvailable
	}
	all := c.repo.List()
	return catalog.Views(catalog.Filter(all, criteria)), len(all), nil
}

func (c *Core) School(id string) (*entity.SchoolView, error) {
	if c.repo == nil {
		return nil, ErrNotAvailable
	}
	school, ok := c.repo.Get(id)
	if !ok {
		return nil, nil
	}
	view := catalog.View(school)
	return &view, nil
}

func (c *Core) Stats() (entity.Stats, error) {
	if c.repo == nil {
		return entity.Stats{}, ErrNotAvailable
	}
	return catalog.Aggregate(c.repo.List()), nil
}

type TypesInfo struct {
	Types  []entity.TypeInfo  `json:"types"`
	Grades []entity.GradeInfo `json:"grades"`
}

func (c *Core) Types() TypesInfo {
	info := TypesInfo{}
	for _, t := range entity.AllSchoolTypes() {
		info.Types = append(info.Types, t.Info())
	}
	for _, g := range entity.AllGradeCategories() {
		info.Grades = append(info.Grades, entity.GradeInfo{Category: g, Label: g.Label()})
	}
	return info
}

func (c *Core) AddSchool(ctx context.Context, fields intake.Fields) (entity.School, error) {
	if c.intake == nil {
		return entity.School{}, ErrNotAvailable
	}
	return c.intake.Submit(ctx, fields)
}

package catalog

import (
	"fmt"
	"strings"

	"netivim/entity"
)

// TypeSet is a set of selected school types.
type TypeSet map[entity.SchoolType]struct{}

func NewTypeSet(types ...entity.SchoolType) TypeSet {
	set := make(TypeSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// AllTypes is the initial selection: every type.
func AllTypes() TypeSet {
	return NewTypeSet(entity.AllSchoolTypes()...)
}

func (s TypeSet) Has(t entity.SchoolType) bool {
	_, ok := s[t]
	return ok
}

// Slice returns the members in enumeration order.
func (s TypeSet) Slice() []entity.SchoolType {
	out := make([]entity.SchoolType, 0, len(s))
	for _, t := range entity.AllSchoolTypes() {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// ParseTypes reads a comma-separated list of type keys. An empty string
// yields an empty set.
func ParseTypes(csv string) (TypeSet, error) {
	set := TypeSet{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := entity.ParseSchoolType(part)
		if err != nil {
			return nil, err
		}
		set[t] = struct{}{}
	}
	return set, nil
}

// ParseGrade reads an optional grade category; "" and "all" mean any.
func ParseGrade(s string) (entity.GradeCategory, error) {
	if s == "" || s == "all" {
		return "", nil
	}
	g := entity.GradeCategory(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown grade category %q", s)
	}
	return g, nil
}

// Criteria is the filter state owned by one client.
type Criteria struct {
	Types TypeSet
	Query string
	// Grade is optional; empty matches every category.
	Grade entity.GradeCategory
}

// DefaultCriteria selects every type with no query.
func DefaultCriteria() Criteria {
	return Criteria{Types: AllTypes()}
}

func (c Criteria) Match(s entity.School) bool {
	if !c.Types.Has(s.Type) {
		return false
	}
	if c.Query != "" && !strings.Contains(s.Name, c.Query) && !strings.Contains(s.City, c.Query) {
		return false
	}
	if c.Grade != "" && Classify(s.Grades) != c.Grade {
		return false
	}
	return true
}

// Filter returns the schools matching c, keeping input order.
func Filter(schools []entity.School, c Criteria) []entity.School {
	out := make([]entity.School, 0, len(schools))
	for _, s := range schools {
		if c.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// View adds derived fields for display.
func View(s entity.School) entity.SchoolView {
	return entity.SchoolView{
		School:        s,
		TypeLabel:     s.Type.Label(),
		GradeCategory: Classify(s.Grades),
	}
}

func Views(schools []entity.School) []entity.SchoolView {
	out := make([]entity.SchoolView, len(schools))
	for i, s := range schools {
		out[i] = View(s)
	}
	return out
}

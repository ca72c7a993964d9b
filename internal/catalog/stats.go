package catalog

import (
	"strings"

	"netivim/entity"
)

// Aggregate counts schools per type. Types with no schools are omitted.
func Aggregate(schools []entity.School) entity.Stats {
	counts := make(map[entity.SchoolType]int)
	cities := make(map[string]struct{})
	for _, s := range schools {
		counts[s.Type]++
		cities[s.City] = struct{}{}
	}

	stats := entity.Stats{
		ByType: make([]entity.TypeCount, 0, len(counts)),
		Total:  len(schools),
		Cities: len(cities),
	}
	for _, t := range entity.AllSchoolTypes() {
		n, ok := counts[t]
		if !ok {
			continue
		}
		stats.ByType = append(stats.ByType, entity.TypeCount{
			Type:  t,
			Label: shortLabel(t),
			Color: t.Color(),
			Count: n,
		})
	}
	stats.DistinctType = len(stats.ByType)
	return stats
}

func shortLabel(t entity.SchoolType) string {
	label := t.Label()
	if i := strings.Index(label, " "); i > 0 {
		return label[:i]
	}
	return label
}

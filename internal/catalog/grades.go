package catalog

import (
	"strings"

	"netivim/entity"
)

const (
	elementaryWord = "יסודי"
	beyondWord     = "על"
	firstGrade     = "א"
	twelfthGrade   = "יב"
)

var quoteStripper = strings.NewReplacer(`'`, "", `"`, "", "״", "", "׳", "")

// Classify maps a free-text grade range such as "א-יב" to a category.
// Matching is by substring, so "יב" also matches inside longer text.
func Classify(grades string) entity.GradeCategory {
	if grades == "" {
		return entity.GradeOther
	}
	clean := strings.TrimSpace(quoteStripper.Replace(grades))

	if strings.Contains(clean, elementaryWord) && !strings.Contains(clean, beyondWord) {
		return entity.GradeElementary
	}

	hasFirst := strings.Contains(clean, firstGrade)
	hasTwelfth := strings.Contains(clean, twelfthGrade)

	switch {
	case hasFirst && hasTwelfth:
		return entity.GradeMulti
	case hasTwelfth:
		return entity.GradeHigh
	case hasFirst:
		return entity.GradeElementary
	}
	return entity.GradeOther
}

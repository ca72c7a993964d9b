package entity

type GradeCategory string

const (
	GradeElementary GradeCategory = "elementary"
	GradeHigh       GradeCategory = "high"
	GradeMulti      GradeCategory = "multi"
	GradeOther      GradeCategory = "other"
)

func AllGradeCategories() []GradeCategory {
	return []GradeCategory{GradeElementary, GradeHigh, GradeMulti, GradeOther}
}

func (g GradeCategory) Valid() bool {
	switch g {
	case GradeElementary, GradeHigh, GradeMulti, GradeOther:
		return true
	}
	return false
}

func (g GradeCategory) Label() string {
	switch g {
	case GradeElementary:
		return "יסודי (א'-ו' / א'-ח')"
	case GradeHigh:
		return "על-יסודי (ז'/ט'-י\"ב)"
	case GradeMulti:
		return "רב-גילאי (א'-י\"ב)"
	case GradeOther:
		return "אחר"
	}
	return "כל הגילאים"
}

type GradeInfo struct {
	Category GradeCategory `json:"category"`
	Label    string        `json:"label"`
}

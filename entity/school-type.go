package entity

import "fmt"

type SchoolType string

const (
	TypeAnthro     SchoolType = "anthro"
	TypeDemo       SchoolType = "demo"
	TypeMontessori SchoolType = "montessori"
	TypeMixed      SchoolType = "mixed"
	TypeBilingual  SchoolType = "bilingual"
	TypeForest     SchoolType = "forest"
	TypeBigPic     SchoolType = "bigpic"
	TypeInclusive  SchoolType = "inclusive"
)

// DefaultSchoolType is used by intake when no type is given.
const DefaultSchoolType = TypeDemo

// AllSchoolTypes returns the enumeration in display order.
func AllSchoolTypes() []SchoolType {
	return []SchoolType{
		TypeAnthro,
		TypeDemo,
		TypeMontessori,
		TypeMixed,
		TypeBilingual,
		TypeForest,
		TypeBigPic,
		TypeInclusive,
	}
}

func ParseSchoolType(s string) (SchoolType, error) {
	t := SchoolType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown school type %q", s)
	}
	return t, nil
}

func (t SchoolType) Valid() bool {
	switch t {
	case TypeAnthro, TypeDemo, TypeMontessori, TypeMixed,
		TypeBilingual, TypeForest, TypeBigPic, TypeInclusive:
		return true
	}
	return false
}

func (t SchoolType) Label() string {
	switch t {
	case TypeAnthro:
		return "אנתרופוסופי (ולדורף)"
	case TypeDemo:
		return "דמוקרטי"
	case TypeMontessori:
		return "מונטסורי"
	case TypeMixed:
		return "משלב (דתי-חילוני)"
	case TypeBilingual:
		return "דו-לשוני"
	case TypeForest:
		return "חינוך יער / טבע"
	case TypeBigPic:
		return "אדם ואדמה / Big Picture"
	case TypeInclusive:
		return "חינוך מכיל (אינקלו)"
	}
	return string(t)
}

// Color is the marker and chart color as a hex string.
func (t SchoolType) Color() string {
	switch t {
	case TypeAnthro:
		return "#f97316"
	case TypeDemo:
		return "#3b82f6"
	case TypeMontessori:
		return "#ef4444"
	case TypeMixed:
		return "#a855f7"
	case TypeBilingual:
		return "#14b8a6"
	case TypeForest:
		return "#22c55e"
	case TypeBigPic:
		return "#ca8a04"
	case TypeInclusive:
		return "#db2777"
	}
	return "#6b7280"
}

// Icon is the Font Awesome glyph name.
func (t SchoolType) Icon() string {
	switch t {
	case TypeAnthro:
		return "fa-seedling"
	case TypeDemo:
		return "fa-users"
	case TypeMontessori:
		return "fa-shapes"
	case TypeMixed:
		return "fa-handshake"
	case TypeBilingual:
		return "fa-language"
	case TypeForest:
		return "fa-tree"
	case TypeBigPic:
		return "fa-lightbulb"
	case TypeInclusive:
		return "fa-puzzle-piece"
	}
	return "fa-school"
}

// TypeInfo is the client-facing description of a SchoolType.
type TypeInfo struct {
	Type  SchoolType `json:"type"`
	Label string     `json:"label"`
	Color string     `json:"color"`
	Icon  string     `json:"icon"`
}

func (t SchoolType) Info() TypeInfo {
	return TypeInfo{
		Type:  t,
		Label: t.Label(),
		Color: t.Color(),
		Icon:  t.Icon(),
	}
}

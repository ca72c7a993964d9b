package store

import (
	"fmt"

	"netivim/entity"
)

var seedDrafts = []entity.SchoolDraft{
	{Name: "נפתלי", Type: entity.TypeForest, City: "יבניאל", Region: "צפון", Lat: 32.708, Lng: 35.502, Grades: "א-ו"},
	{Name: "דמוקרטי חדרה", Type: entity.TypeDemo, City: "חדרה", Region: "מרכז", Lat: 32.436, Lng: 34.920, Grades: "א-יב"},
	{Name: "זומר", Type: entity.TypeAnthro, City: "רמת גן", Region: "מרכז", Lat: 32.072, Lng: 34.815, Grades: "א-ח"},
	{Name: "יחד מודיעין", Type: entity.TypeMixed, City: "מודיעין", Region: "מרכז", Lat: 31.907, Lng: 35.007, Grades: "א-יב"},
	{Name: "מקס ריין", Type: entity.TypeBilingual, City: "ירושלים", Region: "ירושלים", Lat: 31.750, Lng: 35.195, Grades: "א-יב"},
	{Name: "ראשית", Type: entity.TypeInclusive, City: "אלון שבות", Region: "ירושלים", Lat: 31.656, Lng: 35.126, Grades: "א-ו"},
	{Name: "אבני דרך", Type: entity.TypeMontessori, City: "הרצליה", Region: "מרכז", Lat: 32.162, Lng: 34.844, Grades: "א-ו"},
}

// Seed returns the example collection installed on first run.
func Seed() []entity.School {
	schools := make([]entity.School, len(seedDrafts))
	for i, d := range seedDrafts {
		schools[i] = entity.NewSchool(fmt.Sprintf("seed-%d", i), d)
	}
	return schools
}

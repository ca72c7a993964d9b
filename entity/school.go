package entity

// School is one alternative-education institution. Field names in JSON
// match the persisted blob.
type School struct {
	ID         string     `json:"id" bson:"id"`
	Name       string     `json:"name" bson:"name"`
	Type       SchoolType `json:"type" bson:"type"`
	City       string     `json:"city" bson:"city"`
	Region     string     `json:"region" bson:"region"`
	Lat        float64    `json:"lat" bson:"lat"`
	Lng        float64    `json:"lng" bson:"lng"`
	Grades     string     `json:"grades" bson:"grades"`
	EstYear    int        `json:"estYear,omitempty" bson:"est_year,omitempty"`
	OrigStream string     `json:"origStream,omitempty" bson:"orig_stream,omitempty"`
	ConvYear   int        `json:"convYear,omitempty" bson:"conv_year,omitempty"`
	History    string     `json:"history,omitempty" bson:"history,omitempty"`
	Phone      string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Email      string     `json:"email,omitempty" bson:"email,omitempty"`
	Website    string     `json:"website,omitempty" bson:"website,omitempty"`
	Address    string     `json:"address,omitempty" bson:"address,omitempty"`
}

// SchoolDraft is a School that has not been assigned an id yet.
type SchoolDraft struct {
	Name       string
	Type       SchoolType
	City       string
	Region     string
	Lat        float64
	Lng        float64
	Grades     string
	EstYear    int
	OrigStream string
	ConvYear   int
	History    string
	Phone      string
	Email      string
	Website    string
	Address    string
}

// NewSchool creates a School from a draft with the given id.
func NewSchool(id string, d SchoolDraft) School {
	return School{
		ID:         id,
		Name:       d.Name,
		Type:       d.Type,
		City:       d.City,
		Region:     d.Region,
		Lat:        d.Lat,
		Lng:        d.Lng,
		Grades:     d.Grades,
		EstYear:    d.EstYear,
		OrigStream: d.OrigStream,
		ConvYear:   d.ConvYear,
		History:    d.History,
		Phone:      d.Phone,
		Email:      d.Email,
		Website:    d.Website,
		Address:    d.Address,
	}
}

// SchoolView is a School enriched with derived fields for clients.
type SchoolView struct {
	School
	TypeLabel     string        `json:"type_label"`
	GradeCategory GradeCategory `json:"grade_category"`
}

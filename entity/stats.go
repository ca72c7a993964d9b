package entity

type TypeCount struct {
	Type  SchoolType `json:"type"`
	Label string     `json:"label"`
	Color string     `json:"color"`
	Count int        `json:"count"`
}

type Stats struct {
	ByType       []TypeCount `json:"by_type"`
	Total        int         `json:"total"`
	DistinctType int         `json:"distinct_types"`
	Cities       int         `json:"cities"`
}

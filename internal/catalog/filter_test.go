package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/entity"
)

func testSchools() []entity.School {
	return []entity.School{
		{ID: "1", Name: "נפתלי", Type: entity.TypeForest, City: "יבניאל", Grades: "א-ו"},
		{ID: "2", Name: "דמוקרטי חדרה", Type: entity.TypeDemo, City: "חדרה", Grades: "א-יב"},
		{ID: "3", Name: "זומר", Type: entity.TypeAnthro, City: "רמת גן", Grades: "א-ח"},
		{ID: "4", Name: "תיכון דמוקרטי", Type: entity.TypeDemo, City: "חדרה", Grades: "ט-יב"},
		{ID: "5", Name: "Big Picture", Type: entity.TypeBigPic, City: "Haifa", Grades: "ז-יב"},
	}
}

func ids(schools []entity.School) []string {
	out := make([]string, len(schools))
	for i, s := range schools {
		out[i] = s.ID
	}
	return out
}

func TestFilter_AllTypesNoQuery(t *testing.T) {
	got := Filter(testSchools(), DefaultCriteria())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got))
}

func TestFilter_EmptyTypeSet(t *testing.T) {
	got := Filter(testSchools(), Criteria{Types: TypeSet{}, Query: "חדרה"})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilter_TypeAndQuery(t *testing.T) {
	c := Criteria{Types: NewTypeSet(entity.TypeDemo, entity.TypeForest), Query: "חדרה"}
	got := Filter(testSchools(), c)
	assert.Equal(t, []string{"2", "4"}, ids(got))

	for _, s := range got {
		assert.True(t, c.Types.Has(s.Type))
	}
}

func TestFilter_QueryMatchesNameOrCity(t *testing.T) {
	got := Filter(testSchools(), Criteria{Types: AllTypes(), Query: "דמוקרטי"})
	assert.Equal(t, []string{"2", "4"}, ids(got))

	got = Filter(testSchools(), Criteria{Types: AllTypes(), Query: "רמת"})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestFilter_QueryIsCaseSensitive(t *testing.T) {
	assert.Len(t, Filter(testSchools(), Criteria{Types: AllTypes(), Query: "Picture"}), 1)
	assert.Empty(t, Filter(testSchools(), Criteria{Types: AllTypes(), Query: "picture"}))
	assert.Empty(t, Filter(testSchools(), Criteria{Types: AllTypes(), Query: "haifa"}))
}

func TestFilter_GradeDimension(t *testing.T) {
	got := Filter(testSchools(), Criteria{Types: AllTypes(), Grade: entity.GradeHigh})
	assert.Equal(t, []string{"4", "5"}, ids(got))

	got = Filter(testSchools(), Criteria{Types: AllTypes(), Grade: entity.GradeElementary})
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := testSchools()
	_ = Filter(in, Criteria{Types: NewTypeSet(entity.TypeDemo)})
	assert.Equal(t, testSchools(), in)
}

func TestParseTypes(t *testing.T) {
	set, err := ParseTypes("demo, forest,,")
	require.NoError(t, err)
	assert.Equal(t, []entity.SchoolType{entity.TypeDemo, entity.TypeForest}, set.Slice())

	set, err = ParseTypes("")
	require.NoError(t, err)
	assert.Empty(t, set)

	_, err = ParseTypes("demo,unknown")
	assert.Error(t, err)
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade("all")
	require.NoError(t, err)
	assert.Equal(t, entity.GradeCategory(""), g)

	g, err = ParseGrade("multi")
	require.NoError(t, err)
	assert.Equal(t, entity.GradeMulti, g)

	_, err = ParseGrade("kindergarten")
	assert.Error(t, err)
}

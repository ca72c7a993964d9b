package mapview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/entity"
)

type recordingCanvas struct {
	calls []string
}

func (c *recordingCanvas) AddMarker(m Marker) { c.calls = append(c.calls, "add:"+m.ID) }
func (c *recordingCanvas) RemoveMarker(id string) { c.calls = append(c.calls, "remove:"+id) }
func (c *recordingCanvas) OpenPopup(id string) { c.calls = append(c.calls, "popup:"+id) }
func (c *recordingCanvas) FlyTo(lat, lng float64, zoom int) {
	c.calls = append(c.calls, fmt.Sprintf("fly:%.3f,%.3f@%d", lat, lng, zoom))
}

func (c *recordingCanvas) reset() { c.calls = nil }

func school(id string, lat, lng float64) entity.School {
	return entity.School{ID: id, Name: "school " + id, Type: entity.TypeDemo, City: "חדרה", Lat: lat, Lng: lng, Grades: "א-יב"}
}

func TestUpdate_DiffsMarkers(t *testing.T) {
	c := &recordingCanvas{}
	a := New(nil)
	a.Attach(c)

	a.Update([]entity.School{school("a", 1, 1), school("b", 2, 2)}, "")
	assert.Equal(t, []string{"add:a", "add:b"}, c.calls)

	c.reset()
	a.Update([]entity.School{school("b", 2, 2), school("c", 3, 3)}, "")
	assert.Equal(t, []string{"remove:a", "add:c"}, c.calls, "b is left untouched")
	assert.Equal(t, []string{"b", "c"}, a.Markers())

	c.reset()
	a.Update([]entity.School{school("b", 2, 2), school("c", 3, 3)}, "")
	assert.Empty(t, c.calls)
}

func TestUpdate_SelectionFliesAndOpensPopup(t *testing.T) {
	c := &recordingCanvas{}
	a := New(nil)
	a.Attach(c)
	schools := []entity.School{school("a", 32.1, 34.8), school("b", 31.7, 35.2)}

	a.Update(schools, "")
	c.reset()

	a.Update(schools, "b")
	assert.Equal(t, []string{"fly:31.700,35.200@14", "popup:b"}, c.calls)

	c.reset()
	a.Update(schools, "b")
	assert.Empty(t, c.calls, "unchanged selection does nothing")
}

func TestUpdate_HiddenSelectionIsNoop(t *testing.T) {
	c := &recordingCanvas{}
	a := New(nil)
	a.Attach(c)

	a.Update([]entity.School{school("a", 1, 1)}, "gone")
	assert.Equal(t, []string{"add:a"}, c.calls)

	c.reset()
	a.Update([]entity.School{school("a", 1, 1), school("gone", 5, 5)}, "gone")
	assert.Equal(t, []string{"add:gone", "fly:5.000,5.000@14", "popup:gone"}, c.calls,
		"selection applies once the school becomes visible")
}

func TestAttach_ReplaysDeferredState(t *testing.T) {
	a := New(nil)
	assert.False(t, a.Attached())

	a.Update([]entity.School{school("a", 1, 1), school("b", 2, 2)}, "a")
	assert.Empty(t, a.Markers())

	c := &recordingCanvas{}
	a.Attach(c)

	assert.True(t, a.Attached())
	assert.Equal(t, []string{"add:a", "add:b", "fly:1.000,1.000@14", "popup:a"}, c.calls)
}

func TestClick_RelaysKnownMarkers(t *testing.T) {
	var selected []string
	a := New(func(id string) { selected = append(selected, id) })
	a.Attach(&recordingCanvas{})
	a.Update([]entity.School{school("a", 1, 1)}, "")

	a.Click("a")
	a.Click("unknown")

	assert.Equal(t, []string{"a"}, selected)
}

func TestNewMarker(t *testing.T) {
	m := NewMarker(entity.School{ID: "x", Name: "זומר", Type: entity.TypeAnthro, City: "רמת גן", Grades: "א-ח", Lat: 32.07, Lng: 34.81})

	require.Equal(t, "x", m.ID)
	assert.Equal(t, entity.TypeAnthro.Color(), m.Color)
	assert.Equal(t, "fa-seedling", m.Icon)
	assert.Contains(t, m.Popup, "רמת גן")
}

package mapview

import (
	"fmt"
	"sort"
	"sync"

	"netivim/entity"
)

// FocusZoom is the zoom level used when flying to a selected school.
const FocusZoom = 14

// Marker is what the map draws for one school.
type Marker struct {
	ID    string            `json:"id"`
	Lat   float64           `json:"lat"`
	Lng   float64           `json:"lng"`
	Type  entity.SchoolType `json:"type"`
	Color string            `json:"color"`
	Icon  string            `json:"icon"`
	Title string            `json:"title"`
	Popup string            `json:"popup"`
}

func NewMarker(s entity.School) Marker {
	return Marker{
		ID:    s.ID,
		Lat:   s.Lat,
		Lng:   s.Lng,
		Type:  s.Type,
		Color: s.Type.Color(),
		Icon:  s.Type.Icon(),
		Title: s.Name,
		Popup: fmt.Sprintf("%s\n%s\n%s · %s", s.Name, s.Type.Label(), s.City, s.Grades),
	}
}

// Canvas is the map widget the adapter drives.
type Canvas interface {
	AddMarker(m Marker)
	RemoveMarker(id string)
	FlyTo(lat, lng float64, zoom int)
	OpenPopup(id string)
}

// Adapter keeps one marker per visible school on a Canvas and only
// touches markers that actually changed.
type Adapter struct {
	mu       sync.Mutex
	canvas   Canvas
	markers  map[string]Marker
	focused  string
	schools  []entity.School
	selected string
	onSelect func(id string)
}

// New creates a detached adapter. onSelect receives marker clicks.
func New(onSelect func(id string)) *Adapter {
	return &Adapter{
		markers:  make(map[string]Marker),
		onSelect: onSelect,
	}
}

// Attach connects the canvas once it is ready and draws the latest state.
func (a *Adapter) Attach(c Canvas) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.canvas = c
	a.markers = make(map[string]Marker)
	a.focused = ""
	a.apply()
}

func (a *Adapter) Attached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canvas != nil
}

// Update sets the visible schools and the selected id ("" for none).
// Before Attach the state is only remembered.
func (a *Adapter) Update(schools []entity.School, selectedID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.schools = schools
	a.selected = selectedID
	a.apply()
}

// Click reports a marker click as a selection intent.
func (a *Adapter) Click(id string) {
	a.mu.Lock()
	_, ok := a.markers[id]
	a.mu.Unlock()
	if ok && a.onSelect != nil {
		a.onSelect(id)
	}
}

// Markers returns the ids currently drawn, sorted.
func (a *Adapter) Markers() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, 0, len(a.markers))
	for id := range a.markers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// apply must be called with mu held.
func (a *Adapter) apply() {
	if a.canvas == nil {
		return
	}

	next := make(map[string]struct{}, len(a.schools))
	for _, s := range a.schools {
		next[s.ID] = struct{}{}
	}
	for id := range a.markers {
		if _, keep := next[id]; !keep {
			a.canvas.RemoveMarker(id)
			delete(a.markers, id)
			if id == a.focused {
				a.focused = ""
			}
		}
	}
	for _, s := range a.schools {
		if _, drawn := a.markers[s.ID]; drawn {
			continue
		}
		m := NewMarker(s)
		a.canvas.AddMarker(m)
		a.markers[s.ID] = m
	}

	if a.selected == "" {
		a.focused = ""
		return
	}
	if a.selected == a.focused {
		return
	}
	m, visible := a.markers[a.selected]
	if !visible {
		return
	}
	a.canvas.FlyTo(m.Lat, m.Lng, FocusZoom)
	a.canvas.OpenPopup(m.ID)
	a.focused = m.ID
}

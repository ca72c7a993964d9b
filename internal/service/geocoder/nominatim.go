package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"netivim/entity"
	"netivim/internal/config"
	"netivim/internal/lib/sl"
)

// ErrUpstream is returned when the geocoding service fails or answers
// with something unreadable.
var ErrUpstream = errors.New("geocoding service error")

type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *cache.Cache
	log        *slog.Logger
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		State string `json:"state"`
		City  string `json:"city"`
		Town  string `json:"town"`
	} `json:"address"`
}

func NewNominatim(conf *config.Config, log *slog.Logger) *Nominatim {
	ttl := conf.Geocoder.CacheTTL
	return &Nominatim{
		baseURL:    strings.TrimRight(conf.Geocoder.BaseURL, "/"),
		userAgent:  conf.Geocoder.UserAgent,
		httpClient: &http.Client{Timeout: conf.Geocoder.Timeout},
		cache:      cache.New(ttl, ttl*2),
		log:        log.With(sl.Module("geocoder")),
	}
}

// Search returns candidates for a free-text address, best first. An empty
// slice means the address was not found.
func (n *Nominatim) Search(ctx context.Context, query string) ([]entity.Location, error) {
	key := strings.TrimSpace(query)
	if cached, found := n.cache.Get(key); found {
		return cached.([]entity.Location), nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", key)
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	params.Set("accept-language", "he")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	t := time.Now()
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var places []place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	locations := make([]entity.Location, 0, len(places))
	for _, p := range places {
		loc, err := p.location()
		if err != nil {
			n.log.With(slog.String("lat", p.Lat), slog.String("lon", p.Lon)).Warn("skipping candidate", sl.Err(err))
			continue
		}
		locations = append(locations, loc)
	}

	n.log.With(
		slog.String("query", key),
		slog.Int("candidates", len(locations)),
		slog.Duration("duration", time.Since(t)),
	).Debug("geocode")

	// misses are not cached so a corrected map answers the next try
	if len(locations) > 0 {
		n.cache.Set(key, locations, cache.DefaultExpiration)
	}
	return locations, nil
}

func (p place) location() (entity.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return entity.Location{}, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return entity.Location{}, fmt.Errorf("parse lon: %w", err)
	}
	city := p.Address.City
	if city == "" {
		city = p.Address.Town
	}
	return entity.Location{
		Lat:         lat,
		Lng:         lng,
		DisplayName: p.DisplayName,
		State:       p.Address.State,
		City:        city,
	}, nil
}

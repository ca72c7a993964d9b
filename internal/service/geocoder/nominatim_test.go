package geocoder

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/internal/config"
)

const searchURL = "https://nominatim.test/search"

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newTestNominatim(t *testing.T) *Nominatim {
	t.Helper()
	conf := &config.Config{}
	conf.Geocoder.BaseURL = "https://nominatim.test/"
	conf.Geocoder.UserAgent = "netivim-test"
	conf.Geocoder.Timeout = 5 * time.Second
	conf.Geocoder.CacheTTL = time.Minute
	return NewNominatim(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const herzliyaResponse = `[{
  "lat": "32.1624",
  "lon": "34.8447",
  "display_name": "הרצליה, מחוז תל אביב, ישראל",
  "address": {"city": "הרצליה", "state": "מחוז תל אביב"}
}]`

func TestSearch_Success(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, searchURL,
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "הרצל 5, הרצליה, Israel", q.Get("q"))
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "1", q.Get("limit"))
			assert.Equal(t, "netivim-test", req.Header.Get("User-Agent"))
			return httpmock.NewStringResponse(http.StatusOK, herzliyaResponse), nil
		})

	n := newTestNominatim(t)
	locs, err := n.Search(context.Background(), "הרצל 5, הרצליה, Israel")

	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.InDelta(t, 32.1624, locs[0].Lat, 0.0001)
	assert.InDelta(t, 34.8447, locs[0].Lng, 0.0001)
	assert.Equal(t, "מחוז תל אביב", locs[0].State)
	assert.Equal(t, "הרצליה", locs[0].City)
}

func TestSearch_Cached(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, searchURL,
		httpmock.NewStringResponder(http.StatusOK, herzliyaResponse))

	n := newTestNominatim(t)
	_, err := n.Search(context.Background(), "x, y, Israel")
	require.NoError(t, err)
	_, err = n.Search(context.Background(), "x, y, Israel")
	require.NoError(t, err)

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSearch_NoCandidates(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, searchURL,
		httpmock.NewStringResponder(http.StatusOK, `[]`))

	locs, err := newTestNominatim(t).Search(context.Background(), "nowhere")

	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestSearch_MissIsRetried(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, searchURL,
		httpmock.NewStringResponder(http.StatusOK, `[]`))

	n := newTestNominatim(t)
	locs, err := n.Search(context.Background(), "הרצל 5, הרצליה, Israel")
	require.NoError(t, err)
	assert.Empty(t, locs)

	httpmock.RegisterResponder(http.MethodGet, searchURL,
		httpmock.NewStringResponder(http.StatusOK, herzliyaResponse))

	locs, err = n.Search(context.Background(), "הרצל 5, הרצליה, Israel")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestSearch_UpstreamErrors(t *testing.T) {
	setupHTTPMock(t)

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server_error", http.StatusInternalServerError, `oops`},
		{"rate_limited", http.StatusTooManyRequests, ``},
		{"invalid_json", http.StatusOK, `{invalid`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder(http.MethodGet, searchURL,
				httpmock.NewStringResponder(tt.status, tt.body))

			locs, err := newTestNominatim(t).Search(context.Background(), tt.name)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUpstream)
			assert.Nil(t, locs)
		})
	}
}

func TestSearch_SkipsUnparsableCandidate(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, searchURL,
		httpmock.NewStringResponder(http.StatusOK, `[{"lat":"north","lon":"34.8"}]`))

	locs, err := newTestNominatim(t).Search(context.Background(), "bad")

	require.NoError(t, err)
	assert.Empty(t, locs)
}

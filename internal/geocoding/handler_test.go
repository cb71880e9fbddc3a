package geocoding

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/testutil"
)

type stubSearcher struct {
	places []Place
	err    error
}

func (s stubSearcher) Search(context.Context, string) ([]Place, error) {
	return s.places, s.err
}

func newRouter(searcher Searcher, reverser Reverser) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	NewHandler(searcher, NewPicker(reverser, logger, nil), logger).Register(r)
	return r
}

func TestHandleSearch(t *testing.T) {
	t.Run("returns selectable results", func(t *testing.T) {
		r := newRouter(stubSearcher{places: []Place{
			{DisplayName: "Pune, Maharashtra, India", Lat: "18.5", Lon: "73.8"},
			{DisplayName: "broken", Lat: "x", Lon: "y"},
		}}, nil)

		rr := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/geocode/search?q=Pune", nil))

		testutil.AssertStatusOK(t, rr)
		body := testutil.UnmarshalResponse[struct {
			Results []SearchResult `json:"results"`
		}](t, rr)
		require.Len(t, body.Results, 1)
		assert.Equal(t, 18.5, body.Results[0].Position.Latitude)
	})

	t.Run("no results is not found", func(t *testing.T) {
		rr := testutil.DoRequest(newRouter(stubSearcher{}, nil), httptest.NewRequest(http.MethodGet, "/geocode/search?q=zzz", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("upstream failure is unavailable", func(t *testing.T) {
		r := newRouter(stubSearcher{err: dErrors.New(dErrors.CodeTimeout, "slow")}, nil)
		rr := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/geocode/search?q=Pune", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusServiceUnavailable, "unavailable")
	})
}

func TestHandleReverse(t *testing.T) {
	t.Run("lookup failure still answers with the position", func(t *testing.T) {
		r := newRouter(nil, stubReverser{err: dErrors.New(dErrors.CodeUnavailable, "down")})

		rr := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=18.5&lon=73.8", nil))

		testutil.AssertStatusOK(t, rr)
		pos := testutil.UnmarshalResponse[GeoPosition](t, rr)
		assert.Equal(t, 18.5, pos.Latitude)
		assert.Nil(t, pos.Address)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		rr := testutil.DoRequest(newRouter(nil, nil), httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=100&lon=0", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}

package geocoding

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/circuit"
	"jurify/pkg/platform/ratelimit"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	calls   atomic.Int32
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.calls.Store(0)
	s.handler = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.handler(w, r)
	}))
	s.client = NewClient(s.server.URL, time.Second)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func writePlaces(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *ClientSuite) TestSearch() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/search", r.URL.Path)
		q := r.URL.Query()
		s.Equal("json", q.Get("format"))
		s.Equal("Shivaji Nagar, Pune", q.Get("q"))
		s.Equal("1", q.Get("addressdetails"))
		s.Equal("5", q.Get("limit"))
		s.Equal(DefaultUserAgent, r.Header.Get("User-Agent"))
		writePlaces(w, []Place{{DisplayName: "Shivaji Nagar, Pune, Maharashtra, India", Lat: "18.53", Lon: "73.85"}})
	}

	places, err := s.client.Search(context.Background(), " Shivaji Nagar, Pune ")

	s.Require().NoError(err)
	s.Require().Len(places, 1)
	s.Equal("18.53", places[0].Lat)
}

func (s *ClientSuite) TestSearchRequiresQuery() {
	_, err := s.client.Search(context.Background(), "  ")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Equal(int32(0), s.calls.Load())
}

func (s *ClientSuite) TestReverse() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/reverse", r.URL.Path)
		q := r.URL.Query()
		s.Equal("18.52", q.Get("lat"))
		s.Equal("73.85", q.Get("lon"))
		s.Equal("18", q.Get("zoom"))
		writePlaces(w, Place{DisplayName: "FC Road, Pune", Address: PlaceAddress{City: "Pune"}})
	}

	place, err := s.client.Reverse(context.Background(), 18.52, 73.85)

	s.Require().NoError(err)
	s.Equal("Pune", place.Address.City)
}

func (s *ClientSuite) TestReverseEmptyAnswerIsNotFound() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writePlaces(w, map[string]string{"error": "Unable to geocode"})
	}
	_, err := s.client.Reverse(context.Background(), 0, 0)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ClientSuite) TestBreakerOpensOnServerErrors() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	s.client = NewClient(s.server.URL, time.Second,
		WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))))

	for range 2 {
		_, err := s.client.Reverse(context.Background(), 1, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	}
	_, err := s.client.Reverse(context.Background(), 1, 1)

	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(int32(2), s.calls.Load(), "open breaker must short-circuit")
}

func (s *ClientSuite) TestRateLimitQueuesCalls() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writePlaces(w, []Place{})
	}
	s.client = NewClient(s.server.URL, time.Second, WithRateLimit(ratelimit.NewWindow(), 1))

	_, err := s.client.Search(context.Background(), "Pune")
	s.Require().NoError(err)

	s.Run("caller deadline ends the wait", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := s.client.Search(ctx, "Pune")
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
		s.Equal(int32(1), s.calls.Load())
	})

	s.Run("queued call runs once a slot frees", func() {
		start := time.Now()
		_, err := s.client.Search(context.Background(), "Pune")
		s.Require().NoError(err)
		s.GreaterOrEqual(time.Since(start), 800*time.Millisecond)
		s.Equal(int32(2), s.calls.Load())
	})
}

func (s *ClientSuite) TestCustomUserAgent() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("jurify-test/2.0", r.Header.Get("User-Agent"))
		writePlaces(w, []Place{})
	}
	s.client = NewClient(s.server.URL, time.Second, WithUserAgent("jurify-test/2.0"))

	_, err := s.client.Search(context.Background(), "Pune")
	s.Require().NoError(err)
}

type stubReverser struct {
	place *Place
	err   error
}

func (s stubReverser) Reverse(context.Context, float64, float64) (*Place, error) {
	return s.place, s.err
}

func TestPickerApply(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("enriches the address", func(t *testing.T) {
		p := NewPicker(stubReverser{place: &Place{
			DisplayName: "Baner Road, Pune",
			Address:     PlaceAddress{City: "Pune", State: "Maharashtra", Postcode: "411045"},
		}}, logger, nil)
		pos := &GeoPosition{Latitude: 18.56, Longitude: 73.78}

		p.Apply(context.Background(), pos)

		if pos.Address == nil || pos.Address.Pincode != "411045" || pos.Address.AddressLine1 != "Baner Road" {
			t.Fatalf("unexpected address: %+v", pos.Address)
		}
	})

	t.Run("errors keep the raw position", func(t *testing.T) {
		p := NewPicker(stubReverser{err: dErrors.New(dErrors.CodeUnavailable, "down")}, logger, nil)
		pos := &GeoPosition{Latitude: 18.56, Longitude: 73.78}

		p.Apply(context.Background(), pos)

		if pos.Address != nil || pos.Latitude != 18.56 || pos.Longitude != 73.78 {
			t.Fatalf("position changed: %+v", pos)
		}
	})
}

func TestCauseOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeTimeout, "geocoding is busy, please try again"), "rate_limited"},
		{context.Canceled, "cancelled"},
		{dErrors.New(dErrors.CodeNotFound, "no address"), "not_found"},
		{dErrors.New(dErrors.CodeUnavailable, "down"), "unavailable"},
		{io.EOF, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := causeOf(tt.err); got != tt.want {
				t.Errorf("causeOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

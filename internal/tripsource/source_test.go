package tripsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/richxcame/trip-dashboard/pkg/httpclient"
	"github.com/richxcame/trip-dashboard/pkg/models"
	"github.com/richxcame/trip-dashboard/pkg/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `[
  {"trip_id":"T0001","user_id":"U101","date":"2024-01-05","pickup_point":"Airport","dropoff_point":"MG Road",
   "distance_km":18.2,"duration_min":41,"fare_inr":"412.50","vehicle_type":"Sedan","payment_method":"UPI","user_rating":5},
  {"trip_id":2,"user_id":"U102","date":"2024-01-06","pickup_point":"Koramangala","dropoff_point":"Indiranagar",
   "distance_km":6.4,"duration_min":22,"fare_inr":138,"vehicle_type":"Auto","payment_method":"Cash","user_rating":4.0}
]`

func newServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/trips" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPSource_FetchTrips(t *testing.T) {
	var hits int32
	server := newServer(t, http.StatusOK, sampleListing, &hits)

	source := NewHTTPSource(httpclient.NewClient(server.URL, time.Second), "")
	trips, err := source.FetchTrips(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 2)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "exactly one request per fetch")
	assert.Equal(t, "T0001", string(trips[0].TripID))
	assert.Equal(t, 412.5, trips[0].Fare.Value())
	assert.Equal(t, models.VehicleSedan, trips[0].VehicleType)
	assert.Equal(t, "2", string(trips[1].TripID))
	assert.Equal(t, 138.0, trips[1].Fare.Value())
	assert.Equal(t, models.Rating(4), trips[1].UserRating)
}

func TestHTTPSource_EmptyListing(t *testing.T) {
	server := newServer(t, http.StatusOK, `[]`, nil)

	trips, err := NewHTTPSource(httpclient.NewClient(server.URL), DefaultPath).FetchTrips(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestHTTPSource_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"db down"}`, false},
		{"not found", http.StatusNotFound, `{}`, false},
		{"not json", http.StatusOK, `<html>oops</html>`, true},
		{"object instead of array", http.StatusOK, `{"trips":[]}`, true},
		{"null body", http.StatusOK, `null`, true},
		{"bad fare", http.StatusOK, `[{"trip_id":"T1","fare_inr":"abc"}]`, true},
		{"missing fare", http.StatusOK, `[{"trip_id":"T1"}]`, true},
		{"null fare", http.StatusOK, `[{"trip_id":"T1","fare_inr":null}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.status, tt.body, nil)
			source := NewHTTPSource(httpclient.NewClient(server.URL), "/trips")

			trips, err := source.FetchTrips(context.Background())
			require.Error(t, err)
			assert.Nil(t, trips)
			assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformedResponse))

			if !tt.malformed {
				var httpErr *httpclient.HTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, tt.status, httpErr.StatusCode)
			}
		})
	}
}

func TestHTTPSource_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPSource(httpclient.NewClient(url, 200*time.Millisecond), "").FetchTrips(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestHTTPSource_OpenBreaker(t *testing.T) {
	var hits int32
	server := newServer(t, http.StatusBadGateway, `bad gateway`, &hits)

	breaker := resilience.NewCircuitBreaker(resilience.BuildSettings("trips-source-test", 60, 60, 1, 1), nil)
	client := httpclient.NewClient(server.URL).Apply(httpclient.WithBreaker(breaker))
	source := NewHTTPSource(client, "")

	_, err := source.FetchTrips(context.Background())
	require.Error(t, err)

	_, err = source.FetchTrips(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNewHTTPSource_DefaultPath(t *testing.T) {
	source := NewHTTPSource(httpclient.NewClient("http://localhost:8000"), "")
	assert.Equal(t, DefaultPath, source.Path())
}

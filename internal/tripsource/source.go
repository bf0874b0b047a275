package tripsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/richxcame/trip-dashboard/pkg/httpclient"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	"github.com/richxcame/trip-dashboard/pkg/models"
	"go.uber.org/zap"
)

// DefaultPath is the trip listing path on the backend
const DefaultPath = "/trips"

// ErrMalformedResponse is returned when the body is not a list of trip records
var ErrMalformedResponse = errors.New("malformed trip listing response")

// Source provides the full trip collection
type Source interface {
	FetchTrips(ctx context.Context) ([]models.Trip, error)
}

// HTTPSource reads trips from the backend trip listing endpoint
type HTTPSource struct {
	client *httpclient.Client
	path   string
}

// NewHTTPSource creates a source that issues GET {base}{path}
func NewHTTPSource(client *httpclient.Client, path string) *HTTPSource {
	if path == "" {
		path = DefaultPath
	}
	return &HTTPSource{client: client, path: path}
}

// Path returns the listing path requested by FetchTrips
func (s *HTTPSource) Path() string {
	return s.path
}

// FetchTrips issues exactly one request and decodes the whole listing.
// A single bad record fails the whole response.
func (s *HTTPSource) FetchTrips(ctx context.Context) ([]models.Trip, error) {
	body, err := s.client.Get(ctx, s.path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch trips: %w", err)
	}

	trips, err := decodeTrips(body)
	if err != nil {
		logger.WithContext(ctx).Warn("trip listing rejected",
			zap.String("path", s.path),
			zap.Int("body_bytes", len(body)),
			zap.Error(err),
		)
		return nil, err
	}

	logger.WithContext(ctx).Debug("trip listing fetched",
		zap.String("path", s.path),
		zap.Int("count", len(trips)),
	)
	return trips, nil
}

func decodeTrips(body []byte) ([]models.Trip, error) {
	var trips []models.Trip
	if err := json.Unmarshal(body, &trips); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if trips == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
	}

	for i, t := range trips {
		if t.Fare.String() == "" {
			return nil, fmt.Errorf("%w: record %d has no fare_inr", ErrMalformedResponse, i)
		}
	}
	return trips, nil
}

package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubSource returns fixed coordinates, optionally after a delay or
// with an error.
type stubSource struct {
	coords Coordinates
	err    error
	delay  time.Duration
}

func (s *stubSource) Current(ctx context.Context) (Coordinates, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Coordinates{}, ctx.Err()
		}
	}
	return s.coords, s.err
}

func TestLocateReturnsCoordinates(t *testing.T) {
	src := &stubSource{coords: Coordinates{Latitude: 18.52, Longitude: 73.85}}
	coords := Locate(context.Background(), src, time.Second)
	assert.NotNil(t, coords)
	assert.Equal(t, 18.52, coords.Latitude)
	assert.Equal(t, 73.85, coords.Longitude)
}

func TestLocateNilSource(t *testing.T) {
	assert.Nil(t, Locate(context.Background(), nil, time.Second))
}

func TestLocateSourceError(t *testing.T) {
	src := &stubSource{err: errors.New("permission denied")}
	assert.Nil(t, Locate(context.Background(), src, time.Second))
}

func TestLocateTimeout(t *testing.T) {
	src := &stubSource{
		coords: Coordinates{Latitude: 1, Longitude: 2},
		delay:  500 * time.Millisecond,
	}
	start := time.Now()
	coords := Locate(context.Background(), src, 20*time.Millisecond)
	assert.Nil(t, coords)
	assert.Less(t, time.Since(start), 400*time.Millisecond, "Locate must give up at the timeout, not wait for the source")
}

// Package geo resolves the shopper's coordinates on a best-effort
// basis. Location only annotates online orders; acquiring it must never
// block checkout, so every failure path degrades to "no coordinates".
package geo

import (
	"context"
	"time"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Source provides the caller's current position. Implementations may
// block; Locate bounds the wait.
type Source interface {
	Current(ctx context.Context) (Coordinates, error)
}

// Locate asks the source for coordinates, waiting at most timeout.
// Denial, timeout, error and a nil source all yield nil, never an
// error: checkout proceeds without coordinates.
func Locate(ctx context.Context, src Source, timeout time.Duration) *Coordinates {
	if src == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type answer struct {
		coords Coordinates
		err    error
	}
	ch := make(chan answer, 1)
	go func() {
		coords, err := src.Current(ctx)
		ch <- answer{coords, err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			return nil
		}
		return &a.coords
	case <-ctx.Done():
		return nil
	}
}

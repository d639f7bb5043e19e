package geocode

import (
	"context"
	"sync"
)

// Result bundles a lookup outcome for delivery.
type Result struct {
	Place Place
	Err   error
}

// Dispatcher serializes rapid-fire reverse-geocode lookups (a map pin being
// dragged) so that only the newest one is ever delivered. Lookups are never
// cancelled in flight; a superseded lookup runs to completion and its result
// is dropped when the sequence counter has moved on by resolution time. The
// mutex spans the staleness check and the delivery, so once a newer lookup
// has started no older result can slip through.
type Dispatcher struct {
	geocoder Geocoder

	mu  sync.Mutex
	seq uint64
}

func NewDispatcher(g Geocoder) *Dispatcher {
	return &Dispatcher{geocoder: g}
}

// Lookup starts a reverse geocode in the background and calls deliver with
// the result only if no newer Lookup has started by then. It returns the
// lookup's sequence number.
func (d *Dispatcher) Lookup(ctx context.Context, lat, lng float64, deliver func(Result)) uint64 {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	go func() {
		place, err := d.geocoder.ReverseGeocode(ctx, lat, lng)

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.seq != seq {
			return
		}
		deliver(Result{Place: place, Err: err})
	}()
	return seq
}

package ops

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jacksmith/trips/internal/model"
)

// TripsKey is the store key holding the serialized collection.
const TripsKey = "saved-trips"

// Source tells where a loaded collection came from.
type Source int

const (
	// SourceLoaded means the collection was decoded from the store.
	SourceLoaded Source = iota
	// SourceSeeded means the seed dataset was used instead.
	SourceSeeded
)

func (s Source) String() string {
	if s == SourceSeeded {
		return "seeded"
	}
	return "loaded"
}

// LoadResult is the outcome of Repository.Load.
type LoadResult struct {
	Source Source
	// Reason explains a seeded load: ErrNoData, or an error wrapping ErrCorrupt.
	Reason error
	// Count is the number of trips in the collection after loading.
	Count int
}

// Seeded reports whether the seed dataset was used.
func (r LoadResult) Seeded() bool { return r.Source == SourceSeeded }

// Repository owns the canonical, ordered trip collection. Every mutation
// writes the whole collection through to the store before returning.
// A Repository is not safe for concurrent use; Manager serializes access.
type Repository struct {
	store  Store
	key    string
	logger *slog.Logger
	now    func() time.Time

	trips     []model.Trip
	lastWrite error
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithClock overrides the time source used for new trip ids and default dates.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// WithKey overrides the store key.
func WithKey(key string) RepositoryOption {
	return func(r *Repository) { r.key = key }
}

// NewRepository creates an empty repository over store. Call Load before use.
func NewRepository(store Store, logger *slog.Logger, opts ...RepositoryOption) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Repository{
		store:  store,
		key:    TripsKey,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the collection from the store. When nothing is stored, or the
// stored value cannot be decoded, the seed dataset is used and written back.
// Load never fails; the result says which branch was taken.
func (r *Repository) Load(ctx context.Context) LoadResult {
	data, ok := r.store.Read(ctx, r.key)
	if !ok {
		return r.seed(ctx, ErrNoData)
	}

	trips, err := model.DecodeTrips(data)
	if err != nil {
		r.logger.Warn("failed to parse saved trips, using sample trips", "key", r.key, "error", err)
		return r.seed(ctx, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}

	r.trips = trips
	r.logger.Debug("loaded saved trips", "count", len(trips))
	return LoadResult{Source: SourceLoaded, Count: len(trips)}
}

func (r *Repository) seed(ctx context.Context, reason error) LoadResult {
	r.trips = model.SeedTrips()
	r.persist(ctx)
	r.logger.Debug("seeded trips", "reason", reason)
	return LoadResult{Source: SourceSeeded, Reason: reason, Count: len(r.trips)}
}

// Reset replaces the collection with the seed dataset.
func (r *Repository) Reset(ctx context.Context) {
	r.trips = model.SeedTrips()
	r.persist(ctx)
}

// All returns a copy of the collection in order.
func (r *Repository) All() []model.Trip {
	return model.CloneAll(r.trips)
}

// Len returns the number of trips.
func (r *Repository) Len() int {
	return len(r.trips)
}

// Get returns a copy of the trip with id.
func (r *Repository) Get(id string) (model.Trip, error) {
	i := r.index(id)
	if i < 0 {
		return model.Trip{}, notFound(id)
	}
	return r.trips[i].Clone(), nil
}

// IDs returns every trip id in collection order.
func (r *Repository) IDs() []string {
	ids := make([]string, len(r.trips))
	for i, t := range r.trips {
		ids[i] = t.ID
	}
	return ids
}

// Create adds a new trip built from f to the front of the collection.
func (r *Repository) Create(ctx context.Context, f model.TripFields) (model.Trip, error) {
	trip, err := r.Build(f)
	if err != nil {
		return model.Trip{}, err
	}
	return r.Insert(ctx, trip), nil
}

// Build returns a trip with a fresh unique id and defaults for any field
// not given in f. The collection is not changed.
func (r *Repository) Build(f model.TripFields) (model.Trip, error) {
	now := r.now()

	var id string
	for {
		var err error
		id, err = model.NewTripID(now)
		if err != nil {
			return model.Trip{}, err
		}
		if r.index(id) < 0 {
			break
		}
	}
	return model.NewTrip(id, f, now), nil
}

// Insert prepends trip, as returned by Build, and writes through.
func (r *Repository) Insert(ctx context.Context, trip model.Trip) model.Trip {
	r.trips = append([]model.Trip{trip.Clone()}, r.trips...)
	r.persist(ctx)

	r.logger.Debug("created trip", "id", trip.ID)
	return trip.Clone()
}

// Update replaces the trip with id by mutate's result. The id cannot change.
func (r *Repository) Update(ctx context.Context, id string, mutate func(model.Trip) model.Trip) (model.Trip, error) {
	i := r.index(id)
	if i < 0 {
		return model.Trip{}, notFound(id)
	}

	updated := mutate(r.trips[i].Clone())
	updated.ID = id
	r.trips[i] = updated.Clone()
	r.persist(ctx)

	return updated, nil
}

// Delete removes the trip with id. It reports false, and writes nothing,
// when there was no such trip.
func (r *Repository) Delete(ctx context.Context, id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.trips = append(r.trips[:i:i], r.trips[i+1:]...)
	r.persist(ctx)

	r.logger.Debug("deleted trip", "id", id)
	return true
}

// LastWriteError returns the error from the most recent write-through, or nil
// if it succeeded.
func (r *Repository) LastWriteError() error {
	return r.lastWrite
}

func (r *Repository) index(id string) int {
	for i := range r.trips {
		if r.trips[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection to the store. The write outlives
// cancellation of ctx so the store never lags the in-memory change. Failures
// are logged and remembered but do not undo that change.
func (r *Repository) persist(ctx context.Context) {
	data, err := model.EncodeTrips(r.trips)
	if err == nil {
		err = r.store.Write(context.WithoutCancel(ctx), r.key, data)
	}
	r.lastWrite = err
	if err != nil {
		r.logger.Warn("failed to save trips", "key", r.key, "error", err)
	}
}

package ops

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jacksmith/trips/internal/model"
	"github.com/jacksmith/trips/internal/notify"
)

// Notices emitted by the Manager.
var (
	NoticeLocked  = notify.Destructive("Authentication Required", "Please sign in to save trips.")
	NoticeCreated = notify.Info("Trip Created", "New trip has been added to your list.")
	NoticeDeleted = notify.Info("", "Trip deleted successfully")
	NoticeSaved   = notify.Info("Trip Updated", "Your changes have been saved.")
)

// ViewState describes what a list view should show.
type ViewState int

const (
	// ViewReady means Trips holds the query results.
	ViewReady ViewState = iota
	// ViewLoading means the collection has not finished loading.
	ViewLoading
	// ViewLocked means nobody is signed in; a sign-in prompt replaces the list.
	ViewLocked
)

func (s ViewState) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewLocked:
		return "locked"
	default:
		return "ready"
	}
}

// View is a read-only snapshot of the collection for display.
type View struct {
	State ViewState
	Query string
	Trips []model.Trip
	// Total is the size of the whole collection, before filtering.
	Total int
}

// Empty reports whether a ready view has nothing to show.
func (v View) Empty() bool {
	return v.State == ViewReady && len(v.Trips) == 0
}

// Hint is the message for an empty view.
func (v View) Hint() string {
	if v.Query != "" {
		return "Try adjusting your search query"
	}
	return "Start planning your first adventure"
}

// ListOptions narrows a List call.
type ListOptions struct {
	FavoritesOnly bool
}

// Manager is the public face of the saved trips collection. It gates
// mutations on authentication, reports outcomes as notices, and serializes
// every operation on the repository.
type Manager struct {
	mu        sync.Mutex
	repo      *Repository
	auth      Authenticator
	notices   notify.Sink
	validator *TripValidator
	logger    *slog.Logger
	loadDelay time.Duration

	loadOnce sync.Once
	ready    chan struct{}
	loaded   LoadResult
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLoadDelay makes Load wait before reading the store.
func WithLoadDelay(d time.Duration) ManagerOption {
	return func(m *Manager) { m.loadDelay = d }
}

// WithNotices sets the notice sink.
func WithNotices(s notify.Sink) ManagerOption {
	return func(m *Manager) { m.notices = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager over repo. Load (or Start) must be called
// before mutations are accepted.
func NewManager(repo *Repository, auth Authenticator, opts ...ManagerOption) *Manager {
	m := &Manager{
		repo:      repo,
		auth:      auth,
		notices:   notify.Discard,
		validator: NewTripValidator(),
		logger:    slog.Default(),
		ready:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load loads the collection once. Later calls return the first result.
// The configured delay ends early if ctx is done, but loading itself always
// completes: a missing or corrupt collection is replaced by the seed trips.
func (m *Manager) Load(ctx context.Context) LoadResult {
	m.loadOnce.Do(func() {
		if m.loadDelay > 0 {
			timer := time.NewTimer(m.loadDelay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
		}

		m.mu.Lock()
		m.loaded = m.repo.Load(context.WithoutCancel(ctx))
		m.mu.Unlock()
		close(m.ready)

		m.logger.Info("trips ready", "source", m.loaded.Source, "count", m.loaded.Count)
		m.notices.Notify(notify.Info("Trips Loaded", fmt.Sprintf("%d saved trips ready.", m.loaded.Count)))
	})
	<-m.ready
	return m.loaded
}

// Start loads the collection in the background.
func (m *Manager) Start(ctx context.Context) {
	go m.Load(ctx)
}

// Ready reports whether loading has finished.
func (m *Manager) Ready() bool {
	select {
	case <-m.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until loading has finished or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List returns the trips matching query. Signed-out users get a locked,
// empty view; before loading finishes the view is in the loading state.
func (m *Manager) List(query string, opts ListOptions) View {
	if !m.auth.IsAuthenticated() {
		return View{State: ViewLocked, Query: query}
	}
	if !m.Ready() {
		return View{State: ViewLoading, Query: query}
	}

	m.mu.Lock()
	all := m.repo.All()
	m.mu.Unlock()

	trips := Filter(all, query)
	if opts.FavoritesOnly {
		trips = Favorites(trips)
	}
	return View{State: ViewReady, Query: query, Trips: trips, Total: len(all)}
}

// IDs returns every trip id, or nil while locked or loading.
func (m *Manager) IDs() []string {
	if !m.auth.IsAuthenticated() || !m.Ready() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.IDs()
}

// Get returns one trip.
func (m *Manager) Get(id string) (model.Trip, error) {
	if !m.auth.IsAuthenticated() {
		return model.Trip{}, ErrUnauthorized
	}
	if !m.Ready() {
		return model.Trip{}, ErrNotReady
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Get(id)
}

// Create adds a new trip with defaults for any field not given in f.
// The resulting trip must pass the same validation as Save.
func (m *Manager) Create(ctx context.Context, f model.TripFields) (model.Trip, error) {
	if err := m.gate(); err != nil {
		return model.Trip{}, err
	}

	m.mu.Lock()
	trip, err := m.repo.Build(f)
	if err == nil {
		err = m.validator.Validate(trip)
	}
	if err == nil {
		trip = m.repo.Insert(ctx, trip)
	}
	m.mu.Unlock()
	if err != nil {
		return model.Trip{}, err
	}

	m.notices.Notify(NoticeCreated)
	return trip, nil
}

// ToggleFavorite flips the favorite flag of one trip.
func (m *Manager) ToggleFavorite(ctx context.Context, id string) (model.Trip, error) {
	if err := m.gate(); err != nil {
		return model.Trip{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Update(ctx, id, func(t model.Trip) model.Trip {
		t.IsFavorite = !t.IsFavorite
		return t
	})
}

// Delete removes a trip. Deleting an unknown id returns ErrNotFound and
// changes nothing, so repeating a delete is safe.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.gate(); err != nil {
		return err
	}

	m.mu.Lock()
	removed := m.repo.Delete(ctx, id)
	m.mu.Unlock()
	if !removed {
		return notFound(id)
	}

	m.notices.Notify(NoticeDeleted)
	return nil
}

// Save replaces the stored trip having edited's id with edited.
func (m *Manager) Save(ctx context.Context, edited model.Trip) (model.Trip, error) {
	if err := m.gate(); err != nil {
		return model.Trip{}, err
	}
	if err := m.validator.Validate(edited); err != nil {
		return model.Trip{}, err
	}

	m.mu.Lock()
	saved, err := m.repo.Update(ctx, edited.ID, func(model.Trip) model.Trip {
		return edited
	})
	m.mu.Unlock()
	if err != nil {
		return model.Trip{}, err
	}

	m.notices.Notify(NoticeSaved)
	return saved, nil
}

// Reset restores the seed trips.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.gate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.repo.Reset(ctx)
	m.mu.Unlock()
	return nil
}

// gate refuses mutations while signed out or still loading.
func (m *Manager) gate() error {
	if !m.auth.IsAuthenticated() {
		m.notices.Notify(NoticeLocked)
		return ErrUnauthorized
	}
	if !m.Ready() {
		return ErrNotReady
	}
	return nil
}

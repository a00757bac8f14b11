package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/logger"
	"github.com/jacksmith/trips/internal/model"
	"github.com/jacksmith/trips/internal/notify"
	"github.com/jacksmith/trips/internal/ops"
	"github.com/jacksmith/trips/internal/storage"
)

type testServer struct {
	*Server
	store   *storage.Memory
	session *auth.Session
	notices *notify.Buffer
}

// newTestServer wires a Server over an in-memory store with the
// collection loaded. signedIn controls the session.
func newTestServer(t *testing.T, signedIn bool) *testServer {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()

	store := storage.NewMemory()
	notices := notify.NewBuffer(20)
	session := auth.NewSession(ctx, store, notices, log)
	if signedIn {
		_, err := session.Login(ctx, "ada@example.com")
		require.NoError(t, err)
	}

	repo := ops.NewRepository(store, log)
	mgr := ops.NewManager(repo, session, ops.WithNotices(notices), ops.WithLogger(log))
	mgr.Load(ctx)
	notices.Drain()

	return &testServer{
		Server:  NewServer(mgr, session, notices, log),
		store:   store,
		session: session,
		notices: notices,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the envelope and its data into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	var raw struct {
		Data    json.RawMessage   `json:"data"`
		Error   string            `json:"error"`
		Fields  map[string]string `json:"fields"`
		Success bool              `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw), rec.Body.String())
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return Envelope{Error: raw.Error, Fields: raw.Fields, Success: raw.Success}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	env := decode(t, rec, &body)
	assert.True(t, env.Success)
	assert.Equal(t, true, body["ready"])
}

func TestListTrips(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/api/trips?q=paris+week", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got listResponse
	decode(t, rec, &got)
	assert.Equal(t, "ready", got.State)
	assert.Equal(t, 3, got.Total)
	require.Len(t, got.Trips, 1)
	assert.Equal(t, "trip1", got.Trips[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/trips?favorites=true", nil)
	decode(t, rec, &got)
	assert.Len(t, got.Trips, 2)

	rec = ts.do(t, http.MethodGet, "/api/trips?q=zanzibar", nil)
	decode(t, rec, &got)
	assert.Empty(t, got.Trips)
	assert.Equal(t, "Try adjusting your search query", got.Hint)
}

func TestListTripsBadFavorites(t *testing.T) {
	ts := newTestServer(t, true)
	rec := ts.do(t, http.MethodGet, "/api/trips?favorites=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTripsLocked(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodGet, "/api/trips", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got listResponse
	decode(t, rec, &got)
	assert.Equal(t, "locked", got.State)
	assert.Empty(t, got.Trips)
}

func TestGetTrip(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/api/trips/trip3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trip model.Trip
	decode(t, rec, &trip)
	assert.Equal(t, "Greek Islands Hopping", trip.Title)

	rec = ts.do(t, http.MethodGet, "/api/trips/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec, nil)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "trip not found")
}

func TestCreateTrip(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodPost, "/api/trips", map[string]any{
		"title":          "Lisbon",
		"savedLocations": []string{"Alfama"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var trip model.Trip
	env := decode(t, rec, &trip)
	assert.True(t, env.Success)
	assert.Equal(t, "Lisbon", trip.Title)
	assert.Equal(t, model.DefaultDestination, trip.Destination)
	assert.Equal(t, []string{"Alfama"}, trip.SavedLocations)

	rec = ts.do(t, http.MethodPost, "/api/trips", nil)
	require.Equal(t, http.StatusCreated, rec.Code, "an empty body uses defaults")
	decode(t, rec, &trip)
	assert.Equal(t, model.DefaultTitle, trip.Title)
}

func TestCreateTripValidation(t *testing.T) {
	ts := newTestServer(t, true)
	before, _ := ts.store.Read(context.Background(), ops.TripsKey)

	rec := ts.do(t, http.MethodPost, "/api/trips", map[string]any{
		"startDate": "banana",
		"image":     "not a url",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	fields, ok := env.Fields.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "startDate")
	assert.Equal(t, "must be a valid URL", fields["image"])

	after, _ := ts.store.Read(context.Background(), ops.TripsKey)
	assert.Equal(t, before, after)
}

func TestMutationsRequireSession(t *testing.T) {
	ts := newTestServer(t, false)
	before, _ := ts.store.Read(context.Background(), ops.TripsKey)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/trips", map[string]any{"title": "x"}},
		{http.MethodPost, "/api/trips/trip2/favorite", nil},
		{http.MethodDelete, "/api/trips/trip1", nil},
		{http.MethodPut, "/api/trips/trip1", model.SeedTrips()[0]},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	after, _ := ts.store.Read(context.Background(), ops.TripsKey)
	assert.Equal(t, before, after)

	notices := ts.notices.Drain()
	require.Len(t, notices, 4)
	assert.Equal(t, ops.NoticeLocked, notices[0])
}

func TestToggleFavorite(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodPost, "/api/trips/trip2/favorite", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trip model.Trip
	decode(t, rec, &trip)
	assert.True(t, trip.IsFavorite)
}

func TestSaveTrip(t *testing.T) {
	ts := newTestServer(t, true)

	edited := model.SeedTrips()[1]
	edited.ID = "ignored"
	edited.Title = "Tokyo and Kyoto"

	rec := ts.do(t, http.MethodPut, "/api/trips/trip2", edited)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved model.Trip
	decode(t, rec, &saved)
	assert.Equal(t, "trip2", saved.ID, "the path id wins")
	assert.Equal(t, "Tokyo and Kyoto", saved.Title)
}

func TestSaveTripValidation(t *testing.T) {
	ts := newTestServer(t, true)

	edited := model.SeedTrips()[1]
	edited.Title = ""
	edited.StartDate = "soon"

	rec := ts.do(t, http.MethodPut, "/api/trips/trip2", edited)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	fields, ok := env.Fields.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", fields["title"])
	assert.Contains(t, fields, "startDate")
}

func TestSaveTripBadBody(t *testing.T) {
	ts := newTestServer(t, true)
	req := httptest.NewRequest(http.MethodPut, "/api/trips/trip2", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTrip(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodDelete, "/api/trips/trip1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/trips/trip1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "a second delete reports not found")
}

func TestNotReady(t *testing.T) {
	log := logger.Discard()
	store := storage.NewMemory()
	mgr := ops.NewManager(ops.NewRepository(store, log), ops.AuthFunc(func() bool { return true }), ops.WithLogger(log))
	srv := NewServer(mgr, auth.NewSession(context.Background(), store, nil, log), nil, log)

	req := httptest.NewRequest(http.MethodPost, "/api/trips/trip1/favorite", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var got listResponse
	decode(t, rec, &got)
	assert.Equal(t, "loading", got.State)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodGet, "/api/session", nil)
	var state struct {
		Authenticated bool       `json:"authenticated"`
		User          *auth.User `json:"user"`
	}
	decode(t, rec, &state)
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)

	rec = ts.do(t, http.MethodPost, "/api/session", loginRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/session", loginRequest{Email: "grace@example.com", Name: "Grace Hopper"})
	require.Equal(t, http.StatusOK, rec.Code)
	var user auth.User
	decode(t, rec, &user)
	assert.Equal(t, "Grace Hopper", user.Name)
	assert.True(t, ts.session.IsAuthenticated())

	rec = ts.do(t, http.MethodDelete, "/api/session", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, ts.session.IsAuthenticated())
}

func TestNoticesDrain(t *testing.T) {
	ts := newTestServer(t, true)
	ts.do(t, http.MethodDelete, "/api/trips/trip1", nil)

	rec := ts.do(t, http.MethodGet, "/api/notices", nil)
	var notices []notify.Notice
	decode(t, rec, &notices)
	require.Len(t, notices, 1)
	assert.Equal(t, "Trip deleted successfully", notices[0].Description)

	rec = ts.do(t, http.MethodGet, "/api/notices", nil)
	decode(t, rec, &notices)
	assert.Empty(t, notices)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodOptions, "/api/trips", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, statusFor(ops.ErrUnauthorized))
	assert.Equal(t, http.StatusNotFound, statusFor(ops.ErrNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&ops.ValidationError{}))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(auth.ErrInvalidEmail))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(ops.ErrNotReady))
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.Canceled))
}
